// Package align merges per-language song collections into one view keyed by
// the canonical (Telugu) song number, using a catalog of number mappings.
package align

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zionsongs/songkit/report"
	"github.com/zionsongs/songkit/song"
)

// Catalog column names.
const (
	ColSongNumber   = "SongNumber"
	ColV1TeluguNo   = "v1TeluguNo"
	ColV2TeluguNo   = "v2TeluguNo"
	ColTamilNumber  = "TamilNumber"
	ColHindiNumber  = "HindiNumber"
	ColNepaliNumber = "NepaliNumber"
	ColTeluguTitle  = "Telugu Title"
	ColEnglishTitle = "English Title"
)

// CatalogHeader is the column order used when writing a catalog.
var CatalogHeader = []string{
	ColSongNumber, ColV1TeluguNo, ColV2TeluguNo, ColTamilNumber,
	ColHindiNumber, ColNepaliNumber, ColTeluguTitle, ColEnglishTitle,
}

var ErrNoSongNumberColumn = errors.New("catalog has no SongNumber column")

// Entry is a catalog row. Number fields are kept as written; "0" and the
// empty string both mean "no such song".
type Entry struct {
	SongNumber   string
	V1TeluguNo   string
	V2TeluguNo   string
	TamilNumber  string
	HindiNumber  string
	NepaliNumber string
	TeluguTitle  string
	EnglishTitle string
}

func mapped(s string) string {
	s = strings.TrimSpace(s)
	if s == "0" {
		return ""
	}
	return s
}

// Number returns the song number of the counterpart in a language, or the
// empty string if there is none. English and Telugu share the canonical
// numbering.
func (e Entry) Number(lang song.Lang) string {
	switch lang {
	case song.English, song.Telugu:
		return mapped(e.SongNumber)
	case song.Tamil:
		return mapped(e.TamilNumber)
	case song.Hindi:
		return mapped(e.HindiNumber)
	case song.Nepali:
		return mapped(e.NepaliNumber)
	}
	return ""
}

// AltNumbers lists all known numbers of a song: canonical, older Telugu
// editions, Tamil and Hindi.
func (e Entry) AltNumbers() []string {
	var result []string
	for _, v := range []string{e.SongNumber, e.V1TeluguNo, e.V2TeluguNo, e.TamilNumber, e.HindiNumber} {
		if v = mapped(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

// Record returns the entry as a CSV row, in CatalogHeader order.
func (e Entry) Record() []string {
	return []string{
		e.SongNumber, e.V1TeluguNo, e.V2TeluguNo, e.TamilNumber,
		e.HindiNumber, e.NepaliNumber, e.TeluguTitle, e.EnglishTitle,
	}
}

// Catalog maps canonical song numbers to their counterparts.
type Catalog struct {
	Entries []Entry
	index   map[string]int
}

// LoadCatalog reads a catalog from CSV with a header row. Columns are found
// by name; only SongNumber is required. Rows without a song number are
// ignored.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("catalog header: %w", err)
	}
	cols := make(map[string]int)
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		cols[h] = i
	}
	if _, ok := cols[ColSongNumber]; !ok {
		return nil, ErrNoSongNumberColumn
	}
	c := &Catalog{index: make(map[string]int)}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		e := Entry{
			SongNumber:   get(ColSongNumber),
			V1TeluguNo:   get(ColV1TeluguNo),
			V2TeluguNo:   get(ColV2TeluguNo),
			TamilNumber:  get(ColTamilNumber),
			HindiNumber:  get(ColHindiNumber),
			NepaliNumber: get(ColNepaliNumber),
			TeluguTitle:  get(ColTeluguTitle),
			EnglishTitle: get(ColEnglishTitle),
		}
		if e.SongNumber == "" {
			continue
		}
		c.Add(e)
	}
	return c, nil
}

// LoadCatalogFile opens and reads a catalog file.
func LoadCatalogFile(filename string) (*Catalog, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Add appends an entry, a later entry for the same number wins lookups.
func (c *Catalog) Add(e Entry) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.index[song.ParseNumber(e.SongNumber).Key()] = len(c.Entries)
	c.Entries = append(c.Entries, e)
}

// Lookup finds the entry for a canonical song number.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	i, ok := c.index[song.ParseNumber(id).Key()]
	if !ok {
		return Entry{}, false
	}
	return c.Entries[i], true
}

// References reports whether any entry with a canonical number maps to the
// given number in a language.
func (c *Catalog) References(lang song.Lang, number string) bool {
	key := song.ParseNumber(number).Key()
	for _, e := range c.Entries {
		if mapped(e.SongNumber) == "" {
			continue
		}
		if n := e.Number(lang); n != "" && song.ParseNumber(n).Key() == key {
			return true
		}
	}
	return false
}

// Reverse maps numbers of a language back to canonical numbers. If a number
// is mapped more than once, the first mapping is kept and the others are
// reported.
func (c *Catalog) Reverse(lang song.Lang) (map[string]string, []report.Issue) {
	var (
		result = make(map[string]string)
		issues []report.Issue
	)
	for _, e := range c.Entries {
		n, id := e.Number(lang), mapped(e.SongNumber)
		if n == "" || id == "" {
			continue
		}
		key := song.ParseNumber(n).Key()
		if prev, ok := result[key]; ok {
			if prev != id {
				issues = append(issues, report.Issue{
					Kind:    report.Duplicate,
					Source:  "catalog",
					Song:    n,
					Message: fmt.Sprintf("%s number %s mapped to %s and %s, keeping %s", lang.Name(), n, prev, id, prev),
				})
			}
			continue
		}
		result[key] = id
	}
	return result, issues
}

// WriteCatalog writes entries as CSV, with header.
func WriteCatalog(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CatalogHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write(e.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
