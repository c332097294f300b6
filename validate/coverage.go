package validate

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/zionsongs/songkit/convert"
	"github.com/zionsongs/songkit/song"
)

// Gap is a section lacking some languages.
type Gap struct {
	Section string
	Missing []string
}

// Coverage describes which languages an interleaved OpenLyrics song
// carries. Languages are three letter sentinel codes, like "tel".
type Coverage struct {
	File string
	// Missing languages do not appear anywhere in the song.
	Missing  []string
	Verses   []Gap
	Choruses []Gap
}

// Codes returns the sentinel codes of languages.
func Codes(langs []song.Lang) []string {
	var codes []string
	for _, l := range langs {
		codes = append(codes, l.ISO3())
	}
	return codes
}

func missing(want []string, have map[string]bool) []string {
	var result []string
	for _, code := range want {
		if !have[code] {
			result = append(result, code)
		}
	}
	return result
}

// CheckOpenLyrics reads a song and checks every section for all languages
// in codes. Alternative number sections (o1) are not checked.
func CheckOpenLyrics(name string, r io.Reader, codes []string) (*Coverage, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, convert.SkipError(fmt.Errorf("%s: %w", name, err))
	}
	var (
		cov    = &Coverage{File: name}
		inSong = make(map[string]bool)
	)
	for _, v := range xmlquery.Find(doc, "//*[local-name()='lyrics']/*[local-name()='verse']") {
		section := v.SelectAttr("name")
		if strings.HasPrefix(section, "o") {
			continue
		}
		present := make(map[string]bool)
		for _, l := range xmlquery.Find(v, "./*[local-name()='lines']") {
			for _, code := range convert.SpanLanguages(l.InnerText()) {
				present[code] = true
				inSong[code] = true
			}
		}
		gaps := missing(codes, present)
		if len(gaps) == 0 {
			continue
		}
		gap := Gap{Section: section, Missing: gaps}
		if strings.HasPrefix(section, "c") {
			cov.Choruses = append(cov.Choruses, gap)
		} else {
			cov.Verses = append(cov.Verses, gap)
		}
	}
	cov.Missing = missing(codes, inSong)
	return cov, nil
}

// CoverageWriter writes three CSV reports: songs missing a language
// entirely, and verses and choruses missing languages. Section gaps are only
// written for songs that have every language somewhere.
type CoverageWriter struct {
	missing, verses, choruses *csv.Writer
	err                       error
}

// NewCoverageWriter writes the headers.
func NewCoverageWriter(missing, verses, choruses io.Writer) *CoverageWriter {
	cw := &CoverageWriter{
		missing:  csv.NewWriter(missing),
		verses:   csv.NewWriter(verses),
		choruses: csv.NewWriter(choruses),
	}
	cw.write(cw.missing, "FileName", "MissingLanguages")
	cw.write(cw.verses, "FileName", "VerseName", "MissingLanguages")
	cw.write(cw.choruses, "FileName", "ChorusName", "MissingLanguages")
	return cw
}

func (cw *CoverageWriter) write(w *csv.Writer, record ...string) {
	if cw.err != nil {
		return
	}
	cw.err = w.Write(record)
}

// Write adds the rows of a single song.
func (cw *CoverageWriter) Write(c *Coverage) error {
	if len(c.Missing) > 0 {
		cw.write(cw.missing, c.File, strings.Join(c.Missing, ","))
		return cw.err
	}
	for _, g := range c.Verses {
		cw.write(cw.verses, c.File, g.Section, strings.Join(g.Missing, ","))
	}
	for _, g := range c.Choruses {
		cw.write(cw.choruses, c.File, g.Section, strings.Join(g.Missing, ","))
	}
	return cw.err
}

// Flush flushes all reports.
func (cw *CoverageWriter) Flush() error {
	for _, w := range []*csv.Writer{cw.missing, cw.verses, cw.choruses} {
		w.Flush()
		if err := w.Error(); err != nil && cw.err == nil {
			cw.err = err
		}
	}
	return cw.err
}
