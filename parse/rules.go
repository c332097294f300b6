package parse

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/segmentio/encoding/json"
)

// Patterns holds the regular expressions recognizing each marker kind. Each
// pattern captures the payload in its last group; patterns with an index or
// key capture it in the first group. Patterns can be kept in a JSON file, so
// new source dialects do not require code changes.
type Patterns struct {
	// SongBoundary matches "Song Number: 12" or "SongNumber: 12".
	SongBoundary string `json:"songBoundary"`
	// Order matches "VerseOrder: c1 v1 c1".
	Order string `json:"order"`
	// Title matches "EN Title: ...", "Song Title: ..." and similar. The
	// first group is an optional language prefix.
	Title string `json:"title"`
	// Metadata matches carry-through fields, key in the first group.
	Metadata string `json:"metadata"`
	// Anupallavi is checked before Pallavi, since the keyword contains it.
	Anupallavi string `json:"anupallavi"`
	Pallavi    string `json:"pallavi"`
	// Chorus matches "Chorus2 : ..." with the index in the first group.
	Chorus string `json:"chorus"`
	// Verse matches numbered verses, "1. text".
	Verse string `json:"verse"`
	// VerseLabel matches labeled verses, "Verse 2: text".
	VerseLabel string `json:"verseLabel"`
}

// DefaultPatterns covers the flat text dialects handled by this module.
func DefaultPatterns() Patterns {
	return Patterns{
		SongBoundary: `(?i)^\s*song\s*number\s*:\s*(.*)$`,
		Order:        `(?i)^\s*verse\s*order\s*:\s*(.*)$`,
		Title:        `(?i)^\s*(?:(EN|TE|TA|HI|NE)\s+|song\s*)?title\s*:\s*(.*)$`,
		Metadata:     `(?i)^\s*(telugu\s+reference\s+number|tamil\s*number|hindi\s*number|nepali\s*number|v1\s*telugu\s*no|v2\s*telugu\s*no|source)\s*:\s*(.*)$`,
		Anupallavi:   `(?i)^\s*(?:anupallavi|అనుపల్లవి)\s*:\s*(.*)$`,
		Pallavi:      `(?i)^\s*(?:pallavi|పల్లవి)\s*:\s*(.*)$`,
		Chorus:       `(?i)^\s*chorus\s*([^:\s]*)\s*:\s*(.*)$`,
		Verse:        `^\s*(\d+)\s*\.\s*(.*)$`,
		VerseLabel:   `(?i)^\s*verse\s*([^:\s]*)\s*:\s*(.*)$`,
	}
}

// LoadPatterns reads patterns from JSON. Fields missing from the file keep
// their default value.
func LoadPatterns(r io.Reader) (Patterns, error) {
	p := DefaultPatterns()
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return p, fmt.Errorf("decode patterns: %w", err)
	}
	return p, nil
}

// LoadPatternsFile is a convenience wrapper around LoadPatterns.
func LoadPatternsFile(filename string) (Patterns, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Patterns{}, err
	}
	defer f.Close()
	return LoadPatterns(f)
}

// Rules are compiled patterns, safe for concurrent use.
type Rules struct {
	songBoundary *regexp.Regexp
	order        *regexp.Regexp
	title        *regexp.Regexp
	metadata     *regexp.Regexp
	anupallavi   *regexp.Regexp
	pallavi      *regexp.Regexp
	chorus       *regexp.Regexp
	verse        *regexp.Regexp
	verseLabel   *regexp.Regexp
}

// Compile compiles all patterns. An empty pattern disables a marker kind.
func (p Patterns) Compile() (*Rules, error) {
	var (
		rules = &Rules{}
		specs = []struct {
			name string
			expr string
			dst  **regexp.Regexp
		}{
			{"songBoundary", p.SongBoundary, &rules.songBoundary},
			{"order", p.Order, &rules.order},
			{"title", p.Title, &rules.title},
			{"metadata", p.Metadata, &rules.metadata},
			{"anupallavi", p.Anupallavi, &rules.anupallavi},
			{"pallavi", p.Pallavi, &rules.pallavi},
			{"chorus", p.Chorus, &rules.chorus},
			{"verse", p.Verse, &rules.verse},
			{"verseLabel", p.VerseLabel, &rules.verseLabel},
		}
	)
	for _, s := range specs {
		if s.expr == "" {
			continue
		}
		re, err := regexp.Compile(s.expr)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", s.name, err)
		}
		*s.dst = re
	}
	return rules, nil
}

// DefaultRules are the compiled default patterns.
var DefaultRules = MustCompile(DefaultPatterns())

// MustCompile is like Compile but panics on invalid patterns.
func MustCompile(p Patterns) *Rules {
	rules, err := p.Compile()
	if err != nil {
		panic(err)
	}
	return rules
}
