package parse

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/zionsongs/songkit/report"
	"github.com/zionsongs/songkit/song"
)

// Options configure parsing.
type Options struct {
	// Rules to classify lines with, DefaultRules if nil.
	Rules *Rules
	// Source is used in issue reports, typically a file name.
	Source string
	// BlankCloses makes a blank line close the open section.
	BlankCloses bool
	// MergeByOrdinal uses the verse number to select the verse, so
	// repeated or out of order numbers are merged and sorted.
	MergeByOrdinal bool
	// Orphans decides about continuation lines outside of any section.
	Orphans OrphanPolicy
	// DefaultLang is the language of titles without a language prefix.
	DefaultLang song.Lang
}

// DefaultOptions close sections on blank lines and drop orphaned lines.
func DefaultOptions() Options {
	return Options{BlankCloses: true, Orphans: OrphanDiscard}
}

// Result of parsing a source.
type Result struct {
	Songs  *song.Collection
	Issues []report.Issue
}

// Assembler groups classified lines into records. Feed lines one at a time
// and call Finish at the end of the input.
type Assembler struct {
	opts  Options
	rules *Rules

	songs   *song.Collection
	issues  []report.Issue
	lineNo  int
	started bool
	seen    int // song boundaries seen

	cur     *song.Record
	tracker *Tracker
	curLine int // line of the current boundary
	anomaly bool
}

// NewAssembler returns an assembler.
func NewAssembler(opts Options) *Assembler {
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules
	}
	return &Assembler{
		opts:  opts,
		rules: rules,
		songs: song.NewCollection(),
	}
}

func (a *Assembler) warn(kind report.Kind, format string, args ...interface{}) {
	var number string
	if a.cur != nil {
		number = a.cur.Number.String()
	}
	a.issues = append(a.issues, report.Issue{
		Kind:    kind,
		Source:  a.opts.Source,
		Line:    a.lineNo,
		Song:    number,
		Message: fmt.Sprintf(format, args...),
	})
}

// Feed processes the next input line.
func (a *Assembler) Feed(s string) {
	a.lineNo++
	if a.lineNo == 1 {
		s = strings.TrimPrefix(s, "\ufeff")
	}
	line := a.rules.Classify(s)
	if line.Kind == SongBoundary {
		a.flush()
		a.begin(line)
		return
	}
	if !a.started {
		if line.Kind != Blank {
			a.warn(report.Orphan, "text before first song: %q", strings.TrimSpace(s))
		}
		return
	}
	switch line.Kind {
	case Blank:
		if a.opts.BlankCloses {
			a.tracker.Close()
		}
	case TitleLine:
		a.tracker.Close()
		lang := line.Lang
		if lang == "" {
			lang = a.opts.DefaultLang
		}
		if line.Text == "" {
			a.warn(report.MissingField, "empty title")
			return
		}
		a.cur.SetTitle(lang, line.Text)
	case OrderLine:
		a.tracker.Close()
		a.cur.Order = line.Tokens
	case MetadataLine:
		a.tracker.Close()
		a.cur.Set(line.Key, line.Text)
	case RefrainMarker:
		if line.Malformed {
			a.warn(report.MalformedMarker, "unreadable chorus number %q, using next free index", line.RawIndex)
		}
		if a.tracker.HasVerses() && !a.anomaly {
			a.anomaly = true
			a.warn(report.Anomaly, "%s after verses", line.Section)
		}
		a.tracker.Open(line.Section, line.Index, line.Text)
	case VerseMarker:
		if line.Malformed {
			a.warn(report.MalformedMarker, "unreadable verse number %q, using next index", line.RawIndex)
		}
		a.tracker.Open(Verse, line.Index, line.Text)
	case ContinuationLine:
		if !a.tracker.Append(line.Text) {
			a.warn(report.Orphan, "line outside of any section dropped: %q", line.Text)
		}
	}
}

func (a *Assembler) begin(line Line) {
	a.started = true
	a.seen++
	a.curLine = a.lineNo
	a.anomaly = false
	a.tracker = NewTracker(a.opts)
	a.cur = &song.Record{Number: line.Number}
	if !line.Number.IsKnown() {
		if line.Text == "" {
			a.cur.Number = song.Unresolved(fmt.Sprintf("Unknown%d", a.seen), "missing")
			a.warn(report.MissingField, "missing song number, using %s", a.cur.Number)
		} else {
			a.warn(report.MissingField, "song number %q is not a number", line.Text)
		}
	}
}

// flush emits the current record, if any.
func (a *Assembler) flush() {
	if a.cur == nil {
		return
	}
	r := a.cur
	a.tracker.Fill(r)
	a.cur = nil
	if r.IsEmpty() {
		a.issues = append(a.issues, report.Issue{
			Kind:    report.Anomaly,
			Source:  a.opts.Source,
			Line:    a.curLine,
			Song:    r.Number.String(),
			Message: "empty song dropped",
		})
		return
	}
	if len(r.Titles) == 0 {
		a.issues = append(a.issues, report.Issue{
			Kind:    report.MissingField,
			Source:  a.opts.Source,
			Line:    a.curLine,
			Song:    r.Number.String(),
			Message: "missing title",
		})
	}
	if a.songs.Add(r) {
		a.issues = append(a.issues, report.Issue{
			Kind:    report.Duplicate,
			Source:  a.opts.Source,
			Line:    a.curLine,
			Song:    r.Number.String(),
			Message: "duplicate song number, earlier song replaced",
		})
	}
}

// Finish flushes the last record and returns the result. The assembler must
// not be used afterwards.
func (a *Assembler) Finish() *Result {
	a.flush()
	return &Result{Songs: a.songs, Issues: a.issues}
}

// Parse reads all lines from r.
func Parse(r io.Reader, opts Options) (*Result, error) {
	var (
		a  = NewAssembler(opts)
		br = bufio.NewReader(r)
	)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 || err == nil {
			a.Feed(strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", opts.Source, err)
		}
	}
	return a.Finish(), nil
}

// ParseString is a shortcut for tests and small inputs.
func ParseString(s string, opts Options) *Result {
	result, _ := Parse(strings.NewReader(s), opts)
	return result
}
