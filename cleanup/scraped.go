// Package cleanup turns raw scraped or hand labeled song sources into flat
// tagged text that the parser reads without surprises.
package cleanup

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/zionsongs/songkit/normal"
	"github.com/zionsongs/songkit/report"
)

// Mode selects the language layout of a scraped file.
type Mode int

const (
	English Mode = iota
	Telugu
	// Interleaved files have an English line followed by its Telugu line.
	Interleaved
)

func (m Mode) String() string {
	switch m {
	case Telugu:
		return "telugu"
	case Interleaved:
		return "interleaved"
	default:
		return "english"
	}
}

// ParseMode parses "english", "telugu" or "interleaved".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "english", "en":
		return English, nil
	case "telugu", "te":
		return Telugu, nil
	case "interleaved":
		return Interleaved, nil
	}
	return English, fmt.Errorf("unknown mode: %s", s)
}

func (m Mode) hasTelugu() bool  { return m == Telugu || m == Interleaved }
func (m Mode) hasEnglish() bool { return m == English || m == Interleaved }

var (
	teluguChar     = regexp.MustCompile(`[\x{0C00}-\x{0C7F}]`)
	titleNumber    = regexp.MustCompile(`^(\d+)\.`)
	englishSplit   = regexp.MustCompile(`\s*\|\|\s*|\s*\|\s*\|\s*`)
	trailingPipes  = regexp.MustCompile(`(\|\||\| \|)+$`)
	apLabel        = regexp.MustCompile(`(?i)^(A\.?\s?P\.?\s?:\s*)`)
	doubleColon    = regexp.MustCompile(`Anupallavi :\s*:+`)
	refrainColon   = regexp.MustCompile(`(Pallavi|Anupallavi)\s*:\s*`)
	teluguColon    = regexp.MustCompile(`(పల్లవి)\s*:\s*`)
	quoteNormal    = &normal.Pipeline{Normalizer: []normal.Normalizer{&normal.QuoteNormalizer{}, &normal.SpaceNormalizer{}}}
	capitalizer    = &normal.CapitalizeNormalizer{}
	lowerNormal    = &normal.LowerNormalizer{}
	scanBufferSize = 1 << 20
)

// Scraped cleans a text dump of songsofzion.org pages. Lines starting with
// a dot are titles of the form ".12. English Title తెలుగు".
type Scraped struct {
	Mode   Mode
	Source string

	issues  []report.Issue
	out     []string
	buf     []string
	started bool
	// skipping is set after a title until the first refrain or verse
	skipping bool
	lineNo   int
	songs    int
}

// splitTitle separates English and Telugu title text.
func (s *Scraped) splitTitle(rest string) (en, te string) {
	rest = strings.TrimSpace(rest)
	if s.Mode == English {
		return strings.TrimSpace(englishSplit.Split(rest, 2)[0]), ""
	}
	if loc := teluguChar.FindStringIndex(rest); loc != nil {
		en, te = strings.TrimSpace(rest[:loc[0]]), strings.TrimSpace(rest[loc[0]:])
	} else {
		en = rest
	}
	return strings.TrimSpace(trailingPipes.ReplaceAllString(en, "")), te
}

func (s *Scraped) flush() {
	if len(s.buf) == 0 {
		return
	}
	if len(s.out) > 0 {
		s.out = append(s.out, "")
	}
	for _, line := range s.buf {
		s.out = append(s.out, quoteNormal.Normalize(line))
	}
	s.buf = s.buf[:0]
	s.songs++
}

func (s *Scraped) title(raw string) {
	s.flush()
	s.started = true
	s.skipping = true
	text := strings.TrimSpace(strings.TrimPrefix(raw, "."))
	var number, rest = "", text
	if m := titleNumber.FindStringSubmatch(text); m != nil {
		number = m[1]
		rest = strings.TrimSpace(text[len(m[0]):])
	} else {
		s.issues = append(s.issues, report.Issue{
			Kind:    report.MissingField,
			Source:  s.Source,
			Line:    s.lineNo,
			Message: fmt.Sprintf("title without song number: %q", text),
		})
	}
	en, te := s.splitTitle(rest)
	s.buf = append(s.buf, "Song Number: "+number, "EN Title: "+en)
	if s.Mode.hasTelugu() && te != "" {
		s.buf = append(s.buf, "TE Title: "+te)
	}
}

func (s *Scraped) opensSection(line string) bool {
	if titleNumber.MatchString(line) {
		return true
	}
	if s.Mode == English {
		return strings.Contains(lowerNormal.Normalize(line), "pallavi")
	}
	return strings.Contains(line, "పల్లవి")
}

func (s *Scraped) body(raw string) {
	cleaned := normal.Line.Normalize(raw)
	if cleaned == "" {
		return
	}
	if !s.started {
		s.issues = append(s.issues, report.Issue{
			Kind:    report.Orphan,
			Source:  s.Source,
			Line:    s.lineNo,
			Message: fmt.Sprintf("text before first title dropped: %q", cleaned),
		})
		return
	}
	if s.skipping {
		if !s.opensSection(cleaned) {
			return
		}
		s.skipping = false
	}
	if s.Mode.hasTelugu() {
		if m := titleNumber.FindStringSubmatch(cleaned); m != nil {
			rest := strings.TrimSpace(strings.TrimLeft(cleaned[len(m[1]):], "."))
			cleaned = m[1] + ". " + rest
		}
	}
	if s.Mode.hasEnglish() {
		cleaned = capitalizer.Normalize(cleaned)
	}
	if s.Mode == English {
		cleaned = apLabel.ReplaceAllString(cleaned, "Anupallavi : ")
		cleaned = doubleColon.ReplaceAllString(cleaned, "Anupallavi :")
	}
	cleaned = refrainColon.ReplaceAllString(cleaned, "$1 : ")
	cleaned = teluguColon.ReplaceAllString(cleaned, "$1 : ")
	s.buf = append(s.buf, strings.TrimSpace(cleaned))
}

// Clean reads the raw dump from r and writes cleaned text to w, songs
// separated by one blank line. It returns the issues found.
func (s *Scraped) Clean(r io.Reader, w io.Writer) ([]report.Issue, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), scanBufferSize)
	for scanner.Scan() {
		s.lineNo++
		raw := strings.TrimRight(scanner.Text(), " \t\r")
		if s.lineNo == 1 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}
		if strings.HasPrefix(raw, ".") {
			s.title(raw)
			continue
		}
		s.body(raw)
	}
	if err := scanner.Err(); err != nil {
		return s.issues, fmt.Errorf("read %s: %w", s.Source, err)
	}
	s.flush()
	if len(s.out) == 0 {
		return s.issues, nil
	}
	bw := bufio.NewWriter(w)
	for _, line := range s.out {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return s.issues, err
		}
	}
	return s.issues, bw.Flush()
}

// Songs returns the number of songs written.
func (s *Scraped) Songs() int { return s.songs }
