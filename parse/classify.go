// Package parse turns loosely structured song text into song records. Lines
// are classified one at a time, a tracker keeps the open section, and an
// assembler groups sections into records at song boundaries.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/zionsongs/songkit/song"
)

// Kind of a classified line.
type Kind int

const (
	Blank Kind = iota
	SongBoundary
	TitleLine
	OrderLine
	MetadataLine
	RefrainMarker
	VerseMarker
	ContinuationLine
)

var kindNames = [...]string{
	"blank",
	"song-boundary",
	"title",
	"order",
	"metadata",
	"refrain",
	"verse",
	"continuation",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Section is the kind of a lyric section.
type Section int

const (
	NoSection Section = iota
	Pallavi
	Anupallavi
	Chorus
	Verse
)

func (s Section) String() string {
	switch s {
	case Pallavi:
		return "pallavi"
	case Anupallavi:
		return "anupallavi"
	case Chorus:
		return "chorus"
	case Verse:
		return "verse"
	default:
		return "none"
	}
}

// Line is a classified input line.
type Line struct {
	Kind Kind
	// Text is the payload with the marker removed and surrounding
	// whitespace trimmed.
	Text string
	// Number is set for song boundaries.
	Number song.Number
	// Lang is set for title lines with a language prefix.
	Lang song.Lang
	// Key is set for metadata lines.
	Key string
	// Section and Index are set for refrain and verse markers. Index is
	// zero when the marker carries no usable number.
	Section Section
	Index   int
	// Malformed marks a marker whose index could not be read.
	Malformed bool
	// RawIndex keeps the unreadable index text, for reporting.
	RawIndex string
	// Tokens is set for order lines.
	Tokens []string
}

// Classify classifies a single line, it does not depend on any state.
func (r *Rules) Classify(s string) Line {
	if strings.TrimSpace(s) == "" {
		return Line{Kind: Blank}
	}
	if m := match(r.songBoundary, s); m != nil {
		v := strings.TrimSpace(m[len(m)-1])
		return Line{Kind: SongBoundary, Number: song.ParseNumber(v), Text: v}
	}
	if m := match(r.order, s); m != nil {
		v := strings.TrimSpace(m[len(m)-1])
		return Line{Kind: OrderLine, Text: v, Tokens: strings.Fields(v)}
	}
	if m := match(r.title, s); m != nil {
		l := Line{Kind: TitleLine, Text: strings.TrimSpace(m[len(m)-1])}
		if len(m) > 2 && m[1] != "" {
			l.Lang, _ = song.ParseLang(m[1])
		}
		return l
	}
	if m := match(r.metadata, s); m != nil && len(m) > 2 {
		return Line{
			Kind: MetadataLine,
			Key:  strings.TrimSpace(m[1]),
			Text: strings.TrimSpace(m[len(m)-1]),
		}
	}
	if m := match(r.anupallavi, s); m != nil {
		return Line{Kind: RefrainMarker, Section: Anupallavi, Index: 2, Text: strings.TrimSpace(m[len(m)-1])}
	}
	if m := match(r.pallavi, s); m != nil {
		return Line{Kind: RefrainMarker, Section: Pallavi, Index: 1, Text: strings.TrimSpace(m[len(m)-1])}
	}
	if m := match(r.chorus, s); m != nil {
		return indexed(RefrainMarker, Chorus, m, song.MaxChorus)
	}
	if m := match(r.verse, s); m != nil {
		return indexed(VerseMarker, Verse, m, 0)
	}
	if m := match(r.verseLabel, s); m != nil {
		return indexed(VerseMarker, Verse, m, 0)
	}
	return Line{Kind: ContinuationLine, Text: strings.TrimSpace(s)}
}

// Classify uses the default rules.
func Classify(s string) Line {
	return DefaultRules.Classify(s)
}

func match(re *regexp.Regexp, s string) []string {
	if re == nil {
		return nil
	}
	return re.FindStringSubmatch(s)
}

// indexed builds a marker line from a match with an index group and a text
// group. An empty index is an unnumbered marker, an unreadable one or one
// above limit (if limit is positive) is malformed; both get an index
// assigned later.
func indexed(kind Kind, section Section, m []string, limit int) Line {
	l := Line{Kind: kind, Section: section, Text: strings.TrimSpace(m[len(m)-1])}
	if len(m) < 3 {
		return l
	}
	raw := strings.TrimSpace(m[1])
	if raw == "" {
		return l
	}
	if v, err := strconv.Atoi(raw); err == nil && v > 0 && (limit <= 0 || v <= limit) {
		l.Index = v
		return l
	}
	l.Malformed = true
	l.RawIndex = raw
	return l
}
