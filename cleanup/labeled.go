package cleanup

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/zionsongs/songkit/align"
	"github.com/zionsongs/songkit/convert"
	"github.com/zionsongs/songkit/normal"
	"github.com/zionsongs/songkit/report"
	"github.com/zionsongs/songkit/song"
)

// TBD marks a song without known Telugu original.
const TBD = "TBD"

var (
	labeledVerse   = regexp.MustCompile(`(?i)^(s\d+|ch\d+)\.(.*)`)
	labeledChorus  = regexp.MustCompile(`(?i)^c:(.*)`)
	labeledEChorus = regexp.MustCompile(`(?i)^ec:(.*)`)
	labeledCh      = regexp.MustCompile(`(?i)^ch:(.*)`)
	labeledIgnored = regexp.MustCompile(`(?i)^(v|vc):`)
	digits         = regexp.MustCompile(`\d+`)
	labeledLine    = &normal.Pipeline{Normalizer: []normal.Normalizer{
		&normal.NFCNormalizer{},
		&normal.HyphenNormalizer{},
		&normal.ZeroWidthNormalizer{},
		normal.Func(func(s string) string { return strings.ReplaceAll(s, "|", "") }),
		&normal.SpaceNormalizer{},
		normal.Func(func(s string) string { return strings.TrimSpace(strings.TrimLeft(s, ".")) }),
	}}
)

// Labeled cleans per-song files of the Tamil and Hindi books, which mark
// lines with short labels: "c:" pallavi, "ec:" anupallavi, "s1." or "ch1."
// verses and bare "ch:" lines that form the next free verse.
type Labeled struct {
	Lang song.Lang
	// Refs maps numbers of Lang to Telugu numbers, cf. align.Catalog.Reverse.
	Refs map[string]string
}

// NewLabeled uses the catalog, if any, for Telugu reference numbers.
func NewLabeled(lang song.Lang, catalog *align.Catalog) (*Labeled, []report.Issue) {
	l := &Labeled{Lang: lang, Refs: make(map[string]string)}
	if catalog == nil {
		return l, nil
	}
	refs, issues := catalog.Reverse(lang)
	l.Refs = refs
	return l, issues
}

type labeledVerseBucket struct {
	tag   string
	num   int
	lines []string
}

// NumberFromFilename turns "002.txt" into 2.
func NumberFromFilename(name string) (song.Number, error) {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	n := song.ParseNumber(stem)
	if !n.IsKnown() {
		return n, fmt.Errorf("file name %s is not a song number", filepath.Base(name))
	}
	return song.Known(n.Value()), nil
}

// Clean reads a single song file. The song number comes from the file name,
// the title from the first pallavi or first verse line.
func (l *Labeled) Clean(name string, r io.Reader) (*song.Record, []report.Issue, error) {
	number, err := NumberFromFilename(name)
	if err != nil {
		return nil, nil, convert.SkipError(err)
	}
	var (
		source     = filepath.Base(name)
		rec        = &song.Record{Number: number}
		issues     []report.Issue
		title      string
		verses     []*labeledVerseBucket
		chBuffer   []string
		lineNo     int
		verseByTag = make(map[string]*labeledVerseBucket)
	)
	addVerse := func(tag string, lines ...string) *labeledVerseBucket {
		v, ok := verseByTag[tag]
		if !ok {
			num, _ := strconv.Atoi(digits.FindString(tag))
			v = &labeledVerseBucket{tag: tag, num: num}
			verseByTag[tag] = v
			verses = append(verses, v)
		}
		v.lines = append(v.lines, lines...)
		return v
	}
	flushCh := func() {
		if len(chBuffer) == 0 {
			return
		}
		idx := len(verses) + 1
		addVerse(fmt.Sprintf("ch%d", idx), chBuffer...)
		if title == "" && idx == 1 {
			title = chBuffer[0]
		}
		chBuffer = nil
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), scanBufferSize)
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if raw == "" || labeledIgnored.MatchString(raw) {
			continue
		}
		if m := labeledEChorus.FindStringSubmatch(raw); m != nil {
			flushCh()
			if content := labeledLine.Normalize(m[1]); content != "" {
				rec.Refrain.Anupallavi = append(rec.Refrain.Anupallavi, content)
			}
			continue
		}
		if m := labeledChorus.FindStringSubmatch(raw); m != nil {
			flushCh()
			if content := labeledLine.Normalize(m[1]); content != "" {
				if title == "" {
					title = content
				}
				rec.Refrain.Pallavi = append(rec.Refrain.Pallavi, content)
			}
			continue
		}
		if m := labeledCh.FindStringSubmatch(raw); m != nil {
			if content := labeledLine.Normalize(m[1]); content != "" {
				chBuffer = append(chBuffer, content)
			}
			continue
		}
		if m := labeledVerse.FindStringSubmatch(raw); m != nil {
			flushCh()
			tag := strings.ToLower(m[1])
			if content := labeledLine.Normalize(m[2]); content != "" {
				addVerse(tag, content)
				if title == "" && (tag == "s1" || tag == "ch1") {
					title = content
				}
			}
			continue
		}
		flushCh()
		if strings.Contains(raw, ":") {
			issues = append(issues, report.Issue{
				Kind:    report.Anomaly,
				Source:  source,
				Line:    lineNo,
				Song:    number.String(),
				Message: fmt.Sprintf("unknown label: %s", raw),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, issues, convert.SkipError(fmt.Errorf("read %s: %w", source, err))
	}
	flushCh()
	sort.SliceStable(verses, func(i, j int) bool { return verses[i].num < verses[j].num })
	for _, v := range verses {
		rec.Verses = append(rec.Verses, song.Verse(v.lines))
	}
	if title == "" {
		title = convert.PlaceholderTitle(number)
		issues = append(issues, report.Issue{
			Kind:    report.MissingField,
			Source:  source,
			Song:    number.String(),
			Message: "no pallavi or first verse for title, using " + title,
		})
	}
	rec.Titles = []song.Title{{Text: title}}
	ref, ok := l.Refs[number.Key()]
	if !ok {
		ref = TBD
	}
	rec.Set(align.TeluguReference, ref)
	return rec, issues, nil
}
