// Package song contains the song record model shared by parsers,
// serializers and reports.
package song

import (
	"sort"
	"strings"
)

// Title is a song title in a given language.
type Title struct {
	Lang Lang
	Text string
}

// Field is a carry-through metadata field, e.g. "Telugu Reference Number".
type Field struct {
	Key   string
	Value string
}

// Verse is a numbered stanza, always at least one line.
type Verse []string

// Refrain groups the repeated sections of a song. Pallavi is the main
// refrain (c1), Anupallavi the secondary one (c2). Songs with more than two
// choruses keep the rest in Extra, as c3, c4 and so on.
type Refrain struct {
	Pallavi    []string
	Anupallavi []string
	Extra      [][]string
}

// IsEmpty reports whether no refrain section has lines.
func (r Refrain) IsEmpty() bool {
	if len(r.Pallavi) > 0 || len(r.Anupallavi) > 0 {
		return false
	}
	for _, e := range r.Extra {
		if len(e) > 0 {
			return false
		}
	}
	return true
}

// Record is a single song.
type Record struct {
	Number   Number
	Titles   []Title
	Refrain  Refrain
	Verses   []Verse
	Metadata []Field
	// Order is an explicit verse order as found in the source, if any.
	Order []string
}

// Title returns the title for a language, or an empty string.
func (r *Record) Title(lang Lang) string {
	for _, t := range r.Titles {
		if t.Lang == lang {
			return t.Text
		}
	}
	return ""
}

// FirstTitle returns the first non-empty title of any language.
func (r *Record) FirstTitle() string {
	for _, t := range r.Titles {
		if t.Text != "" {
			return t.Text
		}
	}
	return ""
}

// SetTitle replaces the title for a language in place or appends it.
func (r *Record) SetTitle(lang Lang, text string) {
	for i, t := range r.Titles {
		if t.Lang == lang {
			r.Titles[i].Text = text
			return
		}
	}
	r.Titles = append(r.Titles, Title{Lang: lang, Text: text})
}

// Get returns a metadata value.
func (r *Record) Get(key string) string {
	for _, f := range r.Metadata {
		if strings.EqualFold(f.Key, key) {
			return f.Value
		}
	}
	return ""
}

// Set replaces or appends a metadata field.
func (r *Record) Set(key, value string) {
	for i, f := range r.Metadata {
		if strings.EqualFold(f.Key, key) {
			r.Metadata[i].Value = value
			return
		}
	}
	r.Metadata = append(r.Metadata, Field{Key: key, Value: value})
}

// IsEmpty is true for a record that has nothing but (maybe) a number.
func (r *Record) IsEmpty() bool {
	return len(r.Titles) == 0 && r.Refrain.IsEmpty() && len(r.Verses) == 0 &&
		len(r.Metadata) == 0 && len(r.Order) == 0
}

// HasLyrics reports whether there is any refrain or verse text.
func (r *Record) HasLyrics() bool {
	return !r.Refrain.IsEmpty() || len(r.Verses) > 0
}

// Collection is an ordered list of records with an index by number key.
type Collection struct {
	records []*Record
	index   map[string]int
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{index: make(map[string]int)}
}

// Add appends a record. If a record with the same number key exists, it is
// replaced in place and true is returned.
func (c *Collection) Add(r *Record) (replaced bool) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	key := r.Number.Key()
	if i, ok := c.index[key]; ok {
		c.records[i] = r
		return true
	}
	c.index[key] = len(c.records)
	c.records = append(c.records, r)
	return false
}

// Get returns the record for a number key, like "12".
func (c *Collection) Get(key string) (*Record, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return c.records[i], true
}

// Lookup finds a record by number.
func (c *Collection) Lookup(n Number) (*Record, bool) {
	return c.Get(n.Key())
}

// Len returns the number of records.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Records returns the records in insertion order.
func (c *Collection) Records() []*Record {
	if c == nil {
		return nil
	}
	return c.records
}

// Sorted returns a copy of the records ordered by number, unresolved last.
func (c *Collection) Sorted() []*Record {
	result := make([]*Record, c.Len())
	copy(result, c.Records())
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Number.Less(result[j].Number)
	})
	return result
}
