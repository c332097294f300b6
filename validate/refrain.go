// Package validate checks parsed song collections and exported OpenLyrics
// files and writes the findings as issues or CSV reports.
package validate

import (
	"fmt"

	"github.com/zionsongs/songkit/report"
	"github.com/zionsongs/songkit/song"
)

// WithoutPallavi lists songs that have lyrics but no pallavi.
func WithoutPallavi(c *song.Collection) []*song.Record {
	var result []*song.Record
	for _, r := range c.Sorted() {
		if len(r.Refrain.Pallavi) == 0 && r.HasLyrics() {
			result = append(result, r)
		}
	}
	return result
}

// AnupallaviWithoutPallavi reports songs with a secondary refrain but no main
// refrain. The songs are not changed.
func AnupallaviWithoutPallavi(c *song.Collection, source string) []report.Issue {
	var issues []report.Issue
	for _, r := range c.Sorted() {
		if len(r.Refrain.Anupallavi) > 0 && len(r.Refrain.Pallavi) == 0 {
			issues = append(issues, report.Issue{
				Kind:    report.Anomaly,
				Source:  source,
				Song:    r.Number.String(),
				Message: fmt.Sprintf("anupallavi without pallavi: %s", r.FirstTitle()),
			})
		}
	}
	return issues
}

// Side is one of two collections compared.
type Side struct {
	Lang  song.Lang
	Songs *song.Collection
}

// RefrainAlignment reports songs present in both collections where only one
// side has a pallavi or an anupallavi.
func RefrainAlignment(a, b Side) []report.Issue {
	var issues []report.Issue
	check := func(r, o *song.Record, section string, has func(*song.Record) bool) {
		switch {
		case has(r) && !has(o):
			issues = append(issues, report.Issue{
				Kind:    report.Anomaly,
				Source:  b.Lang.Name(),
				Song:    r.Number.String(),
				Message: fmt.Sprintf("%s has %s but %s missing", a.Lang.Name(), section, b.Lang.Name()),
			})
		case !has(r) && has(o):
			issues = append(issues, report.Issue{
				Kind:    report.Anomaly,
				Source:  a.Lang.Name(),
				Song:    r.Number.String(),
				Message: fmt.Sprintf("%s has %s but %s missing", b.Lang.Name(), section, a.Lang.Name()),
			})
		}
	}
	for _, r := range a.Songs.Sorted() {
		o, ok := b.Songs.Get(r.Number.Key())
		if !ok {
			continue
		}
		check(r, o, "pallavi", func(x *song.Record) bool { return len(x.Refrain.Pallavi) > 0 })
		check(r, o, "anupallavi", func(x *song.Record) bool { return len(x.Refrain.Anupallavi) > 0 })
	}
	return issues
}

// VerseMismatch is a song with differing verse counts.
type VerseMismatch struct {
	Number string
	A, B   int
}

// VerseCounts compares verse counts of songs with a known number in either
// collection; a song missing on one side counts zero verses there. Songs
// with an invalid number are returned separately.
func VerseCounts(a, b Side) (mismatches []VerseMismatch, invalid map[song.Lang][]*song.Record) {
	invalid = make(map[song.Lang][]*song.Record)
	var (
		keys []song.Number
		seen = make(map[string]bool)
	)
	for _, side := range []Side{a, b} {
		for _, r := range side.Songs.Sorted() {
			if !r.Number.IsKnown() {
				invalid[side.Lang] = append(invalid[side.Lang], r)
				continue
			}
			if !seen[r.Number.Key()] {
				seen[r.Number.Key()] = true
				keys = append(keys, r.Number)
			}
		}
	}
	song.SortNumbers(keys)
	for _, n := range keys {
		var ca, cb int
		if r, ok := a.Songs.Get(n.Key()); ok {
			ca = len(r.Verses)
		}
		if r, ok := b.Songs.Get(n.Key()); ok {
			cb = len(r.Verses)
		}
		if ca != cb {
			mismatches = append(mismatches, VerseMismatch{Number: n.Key(), A: ca, B: cb})
		}
	}
	return mismatches, invalid
}
