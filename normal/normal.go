// Package normal contains small text normalizers, chained into pipelines
// for cleaning scraped song text.
package normal

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

type Pipeline struct {
	Normalizer []Normalizer
}

func (p *Pipeline) Normalize(s string) string {
	for _, n := range p.Normalizer {
		s = n.Normalize(s)
	}
	return s
}

type Normalizer interface {
	Normalize(string) string
}

// Func adapts a plain function.
type Func func(string) string

func (f Func) Normalize(s string) string { return f(s) }

type LowerNormalizer struct{}

func (s *LowerNormalizer) Normalize(v string) string {
	return strings.ToLower(v)
}

// NFCNormalizer composes characters, so that Telugu or Devanagari text typed
// with different input methods compares equal.
type NFCNormalizer struct{}

func (s *NFCNormalizer) Normalize(v string) string {
	return norm.NFC.String(v)
}

// ZeroWidthNormalizer removes zero width spaces and stray byte order marks.
// Zero width joiners are kept, Indic scripts need them.
type ZeroWidthNormalizer struct{}

func (s *ZeroWidthNormalizer) Normalize(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200b', '\ufeff':
			return -1
		}
		return r
	}, v)
}

var inlineMarker = regexp.MustCompile(`(\|\|.*?\|\|)|(॥.*?\|\|)|\|\|`)

// InlineMarkerNormalizer removes "|| .. ||" repeat markers.
type InlineMarkerNormalizer struct{}

func (s *InlineMarkerNormalizer) Normalize(v string) string {
	return inlineMarker.ReplaceAllString(v, "")
}

// HyphenNormalizer replaces hyphens and en dashes with spaces.
type HyphenNormalizer struct{}

func (s *HyphenNormalizer) Normalize(v string) string {
	return strings.NewReplacer("-", " ", "–", " ").Replace(v)
}

var quoted = regexp.MustCompile(`“.*?”|".*?"`)

// QuoteNormalizer removes quoted text, quotes included.
type QuoteNormalizer struct{}

func (s *QuoteNormalizer) Normalize(v string) string {
	return quoted.ReplaceAllString(v, "")
}

// SpaceNormalizer collapses runs of whitespace and trims.
type SpaceNormalizer struct{}

func (s *SpaceNormalizer) Normalize(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

// CapitalizeNormalizer upper cases the first letter.
type CapitalizeNormalizer struct{}

func (s *CapitalizeNormalizer) Normalize(v string) string {
	r, size := utf8.DecodeRuneInString(v)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return v
	}
	return string(unicode.ToUpper(r)) + v[size:]
}

// ReplaceNewlineAndTab replaces newlines and tabs with spaces, e.g. for CSV
// cells.
func ReplaceNewlineAndTab(s string) string {
	var sb strings.Builder
	for _, c := range s {
		if c == '\n' || c == '\t' || c == '\r' {
			sb.WriteString(" ")
		} else {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// Line is the pipeline applied to every line of scraped song text.
var Line = &Pipeline{Normalizer: []Normalizer{
	&NFCNormalizer{},
	&ZeroWidthNormalizer{},
	&InlineMarkerNormalizer{},
	&HyphenNormalizer{},
	&SpaceNormalizer{},
}}

// Key is used to compare titles and lines loosely.
var Key = &Pipeline{Normalizer: []Normalizer{
	&NFCNormalizer{},
	&ZeroWidthNormalizer{},
	&LowerNormalizer{},
	&SpaceNormalizer{},
}}
