package align

import (
	"fmt"
	"strings"

	"github.com/zionsongs/songkit/report"
	"github.com/zionsongs/songkit/song"
)

// DefaultLangs is the merge order of languages.
var DefaultLangs = []song.Lang{song.English, song.Telugu, song.Tamil, song.Hindi}

// TeluguReference is the metadata key linking a song to its Telugu original.
const TeluguReference = "Telugu Reference Number"

// Merged is one song across languages. Every language of the merge has a
// record; missing counterparts are empty placeholders.
type Merged struct {
	// ID is the canonical song number, or the song's own number for songs
	// outside of the catalog.
	ID    string
	Entry Entry
	// Unmatched is set for songs not referenced by the catalog; Origin is
	// their language.
	Unmatched bool
	Origin    song.Lang
	Langs     []song.Lang
	Songs     map[song.Lang]*song.Record
	// Missing lists the languages without a counterpart.
	Missing []song.Lang
}

// Song returns the record for a language, never nil.
func (m *Merged) Song(lang song.Lang) *song.Record {
	if r, ok := m.Songs[lang]; ok && r != nil {
		return r
	}
	return &song.Record{}
}

// Title returns the title of the song in a language.
func (m *Merged) Title(lang song.Lang) string {
	r := m.Song(lang)
	if t := r.Title(lang); t != "" {
		return t
	}
	return r.FirstTitle()
}

// HasPallavi reports whether any language has a pallavi.
func (m *Merged) HasPallavi() bool {
	for _, lang := range m.Langs {
		if len(m.Song(lang).Refrain.Pallavi) > 0 {
			return true
		}
	}
	return false
}

// HasAnupallavi reports whether any language has an anupallavi.
func (m *Merged) HasAnupallavi() bool {
	for _, lang := range m.Langs {
		if len(m.Song(lang).Refrain.Anupallavi) > 0 {
			return true
		}
	}
	return false
}

// MaxVerses is the largest verse count of all languages.
func (m *Merged) MaxVerses() int {
	var n int
	for _, lang := range m.Langs {
		if v := len(m.Song(lang).Verses); v > n {
			n = v
		}
	}
	return n
}

// Order is the verse order of the merged song.
func (m *Merged) Order() []string {
	return song.OrderFor(m.HasPallavi(), m.HasAnupallavi(), m.MaxVerses())
}

// LangLines are the lines of a section in one language.
type LangLines struct {
	Lang  song.Lang
	Lines []string
}

// Section is a named section with the text of all languages, in merge
// order. Languages without text for the section have empty lines.
type Section struct {
	Name  string
	Texts []LangLines
}

// Lines returns the text of a language.
func (s Section) Lines(lang song.Lang) []string {
	for _, t := range s.Texts {
		if t.Lang == lang {
			return t.Lines
		}
	}
	return nil
}

// Sections lists c1, c2, further choruses and all verses up to MaxVerses.
func (m *Merged) Sections() []Section {
	var (
		sections []Section
		build    = func(name string, get func(r *song.Record) []string) {
			s := Section{Name: name}
			for _, lang := range m.Langs {
				s.Texts = append(s.Texts, LangLines{Lang: lang, Lines: get(m.Song(lang))})
			}
			sections = append(sections, s)
		}
	)
	if m.HasPallavi() {
		build(song.PallaviName, func(r *song.Record) []string { return r.Refrain.Pallavi })
	}
	if m.HasAnupallavi() {
		build(song.AnupallaviName, func(r *song.Record) []string { return r.Refrain.Anupallavi })
	}
	var extra int
	for _, lang := range m.Langs {
		if n := len(m.Song(lang).Refrain.Extra); n > extra {
			extra = n
		}
	}
	for i := 0; i < extra; i++ {
		i := i
		build(song.ChorusName(i+3), func(r *song.Record) []string {
			if i < len(r.Refrain.Extra) {
				return r.Refrain.Extra[i]
			}
			return nil
		})
	}
	for i := 0; i < m.MaxVerses(); i++ {
		i := i
		build(song.VerseName(i+1), func(r *song.Record) []string {
			if i < len(r.Verses) {
				return r.Verses[i]
			}
			return nil
		})
	}
	return sections
}

// Aligner merges language collections using a catalog.
type Aligner struct {
	Catalog *Catalog
	// Langs to merge, in output order; DefaultLangs if empty.
	Langs   []song.Lang
	Sources map[song.Lang]*song.Collection
	// Unmatched exports songs of catalog-mapped languages (not English or
	// Telugu) that no catalog entry refers to.
	Unmatched bool
}

// Result of a merge.
type Result struct {
	Songs []*Merged
	// Duplicates are merges skipped because their id was already exported.
	Duplicates []*Merged
	Issues     []report.Issue
}

// Merge aligns all catalog entries, then unmatched songs. For every
// catalog id and language without a counterpart, exactly one issue is
// recorded; present counterparts lacking a section that another language
// has get one issue per section.
func (a *Aligner) Merge() *Result {
	var (
		result = &Result{}
		seen   = make(map[string]bool)
		langs  = a.langs()
	)
	for _, e := range a.Catalog.Entries {
		id := mapped(e.SongNumber)
		if id == "" {
			continue
		}
		var (
			m      = &Merged{ID: id, Entry: e, Langs: langs, Songs: make(map[song.Lang]*song.Record)}
			issues []report.Issue
		)
		for _, lang := range langs {
			n := e.Number(lang)
			if n == "" {
				m.Songs[lang] = &song.Record{}
				m.Missing = append(m.Missing, lang)
				issues = append(issues, missing(id, lang, "no %s number in catalog", lang.Name()))
				continue
			}
			r, ok := a.Sources[lang].Get(song.ParseNumber(n).Key())
			if !ok {
				m.Songs[lang] = &song.Record{Number: song.ParseNumber(n)}
				m.Missing = append(m.Missing, lang)
				issues = append(issues, missing(id, lang, "%s song %s not found", lang.Name(), n))
				continue
			}
			m.Songs[lang] = r
		}
		key := "id:" + song.ParseNumber(id).Key()
		if seen[key] {
			result.Duplicates = append(result.Duplicates, m)
			result.Issues = append(result.Issues, report.Issue{
				Kind:    report.Duplicate,
				Source:  "catalog",
				Song:    id,
				Message: "duplicate catalog entry skipped",
			})
			continue
		}
		seen[key] = true
		result.Issues = append(result.Issues, issues...)
		dropTitleVerses(m)
		result.Issues = append(result.Issues, sectionIssues(m)...)
		result.Songs = append(result.Songs, m)
	}
	if a.Unmatched {
		a.mergeUnmatched(result, seen)
	}
	return result
}

func (a *Aligner) langs() []song.Lang {
	if len(a.Langs) > 0 {
		return a.Langs
	}
	return DefaultLangs
}

func (a *Aligner) mergeUnmatched(result *Result, seen map[string]bool) {
	langs := a.langs()
	for _, lang := range langs {
		if lang == song.English || lang == song.Telugu {
			continue
		}
		for _, r := range a.Sources[lang].Records() {
			number := r.Number.String()
			if a.Catalog.References(lang, number) {
				continue
			}
			if ref := strings.TrimSpace(r.Get(TeluguReference)); ref != "" && !strings.EqualFold(ref, "TBD") {
				result.Issues = append(result.Issues, report.Issue{
					Kind:    report.Anomaly,
					Source:  lang.Name(),
					Song:    number,
					Message: fmt.Sprintf("refers to Telugu song %s, but the catalog does not map it, skipped", ref),
				})
				continue
			}
			m := &Merged{
				ID:        number,
				Unmatched: true,
				Origin:    lang,
				Langs:     langs,
				Songs:     make(map[song.Lang]*song.Record),
			}
			for _, l := range langs {
				if l == lang {
					m.Songs[l] = r
				} else {
					m.Songs[l] = &song.Record{}
				}
			}
			m.Entry = unmatchedEntry(lang, number)
			key := string(lang) + ":" + r.Number.Key()
			if seen[key] {
				result.Duplicates = append(result.Duplicates, m)
				result.Issues = append(result.Issues, report.Issue{
					Kind:    report.Duplicate,
					Source:  lang.Name(),
					Song:    number,
					Message: fmt.Sprintf("duplicate unmatched %s song skipped", lang.Name()),
				})
				continue
			}
			seen[key] = true
			dropTitleVerses(m)
			result.Songs = append(result.Songs, m)
		}
	}
}

func unmatchedEntry(lang song.Lang, number string) Entry {
	var e Entry
	switch lang {
	case song.Tamil:
		e.TamilNumber = number
	case song.Hindi:
		e.HindiNumber = number
	case song.Nepali:
		e.NepaliNumber = number
	}
	return e
}

func missing(id string, lang song.Lang, format string, args ...interface{}) report.Issue {
	return report.Issue{
		Kind:    report.MissingCounterpart,
		Source:  lang.Name(),
		Song:    id,
		Message: fmt.Sprintf(format, args...),
	}
}

// sectionIssues reports sections missing from languages that do have a
// counterpart song.
func sectionIssues(m *Merged) []report.Issue {
	absent := make(map[song.Lang]bool)
	for _, lang := range m.Missing {
		absent[lang] = true
	}
	var issues []report.Issue
	for _, s := range m.Sections() {
		for _, t := range s.Texts {
			if absent[t.Lang] || len(t.Lines) > 0 {
				continue
			}
			issues = append(issues, missing(m.ID, t.Lang, "%s section %s missing", t.Lang.Name(), s.Name))
		}
	}
	return issues
}

// dropTitleVerses handles songs that exist in neither English nor Telugu:
// their sources repeat the title (or a TBD marker) as a one line verse,
// which is removed. Records are copied, not modified.
func dropTitleVerses(m *Merged) {
	if m.Title(song.English) != "" || m.Title(song.Telugu) != "" {
		return
	}
	for _, lang := range m.Langs {
		if lang == song.English || lang == song.Telugu {
			continue
		}
		r := m.Song(lang)
		title := strings.TrimSpace(r.FirstTitle())
		if title == "" {
			continue
		}
	search:
		for i, v := range r.Verses {
			for _, line := range v {
				line = strings.TrimSpace(line)
				if line != title && line != "TBD" {
					continue
				}
				if len(v) == 1 {
					c := *r
					c.Verses = append(append([]song.Verse{}, r.Verses[:i]...), r.Verses[i+1:]...)
					m.Songs[lang] = &c
				}
				break search
			}
		}
	}
}
