// Package report collects warnings raised while processing songs and
// renders validation reports.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Kind classifies an issue.
type Kind string

const (
	// MissingField is a required value that was absent, a placeholder was used.
	MissingField Kind = "missing-field"
	// MissingCounterpart is a language missing from a merge.
	MissingCounterpart Kind = "missing-counterpart"
	// MalformedMarker is a section marker with an unreadable index.
	MalformedMarker Kind = "malformed-marker"
	// Anomaly is a structural oddity, reported but never corrected.
	Anomaly Kind = "anomaly"
	// Duplicate is a repeated song number or export id.
	Duplicate Kind = "duplicate"
	// Orphan is text outside of any song or section.
	Orphan Kind = "orphan"
	// Skipped is an input that could not be processed at all.
	Skipped Kind = "skipped"
)

// Issue is a single problem found in the input.
type Issue struct {
	Kind    Kind
	Source  string // file name or source label
	Line    int    // 1-based, zero if unknown
	Song    string // song number, if known
	Message string
}

func (i Issue) String() string {
	var sb strings.Builder
	sb.WriteString("WARNING: ")
	sb.WriteString(string(i.Kind))
	if i.Source != "" {
		sb.WriteString(" ")
		sb.WriteString(i.Source)
		if i.Line > 0 {
			fmt.Fprintf(&sb, ":%d", i.Line)
		}
	}
	if i.Song != "" {
		fmt.Fprintf(&sb, " [song %s]", i.Song)
	}
	sb.WriteString(": ")
	sb.WriteString(i.Message)
	return sb.String()
}

// Log is an append-only issue log. Every issue is written as one line to the
// underlying writer, if any, and mirrored to the logger.
type Log struct {
	RunID  string
	Logger log.FieldLogger

	w      io.Writer
	issues []Issue
	counts map[Kind]int
	err    error
}

// NewLog creates a log writing to w, which may be nil.
func NewLog(w io.Writer) *Log {
	return &Log{
		RunID:  uuid.New().String(),
		Logger: log.StandardLogger(),
		w:      w,
		counts: make(map[Kind]int),
	}
}

// Add records an issue.
func (l *Log) Add(issue Issue) {
	l.issues = append(l.issues, issue)
	l.counts[issue.Kind]++
	if l.w != nil && l.err == nil {
		_, l.err = io.WriteString(l.w, issue.String()+"\n")
	}
	if l.Logger != nil {
		l.Logger.WithFields(log.Fields{
			"kind":   issue.Kind,
			"source": issue.Source,
			"song":   issue.Song,
			"run":    l.RunID,
		}).Warn(issue.Message)
	}
}

// AddAll records a batch of issues.
func (l *Log) AddAll(issues []Issue) {
	for _, issue := range issues {
		l.Add(issue)
	}
}

// Addf records an issue with a formatted message.
func (l *Log) Addf(kind Kind, source, song, format string, args ...interface{}) {
	l.Add(Issue{Kind: kind, Source: source, Song: song, Message: fmt.Sprintf(format, args...)})
}

// Note writes a free form line to the log, without counting it as an issue.
func (l *Log) Note(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.w != nil && l.err == nil {
		_, l.err = io.WriteString(l.w, msg+"\n")
	}
	if l.Logger != nil {
		l.Logger.WithField("run", l.RunID).Info(msg)
	}
}

// Issues returns all issues in the order they were added.
func (l *Log) Issues() []Issue { return l.issues }

// Count returns the number of issues of a kind.
func (l *Log) Count(kind Kind) int { return l.counts[kind] }

// Total returns the number of issues.
func (l *Log) Total() int { return len(l.issues) }

// Err returns the first write error, if any.
func (l *Log) Err() error { return l.err }

// Summary renders counts per kind, e.g. "warnings: 3 (duplicate: 1,
// missing-field: 2), skipped: 0".
func (l *Log) Summary() string {
	var kinds []string
	for k := range l.counts {
		if k == Skipped {
			continue
		}
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	var parts []string
	var warnings int
	for _, k := range kinds {
		n := l.counts[Kind(k)]
		warnings += n
		parts = append(parts, fmt.Sprintf("%s: %d", k, n))
	}
	s := fmt.Sprintf("warnings: %d", warnings)
	if len(parts) > 0 {
		s += " (" + strings.Join(parts, ", ") + ")"
	}
	return fmt.Sprintf("%s, skipped: %d", s, l.counts[Skipped])
}
