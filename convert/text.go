package convert

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/zionsongs/songkit/song"
)

// Dialect of the flat tagged text format.
type Dialect int

const (
	// Zion uses "Song Number:", language titles and Pallavi/Anupallavi.
	Zion Dialect = iota
	// ChristInSong uses "SongNumber:", "SongTitle:", "VerseOrder:" and
	// numbered choruses.
	ChristInSong
)

// ParseDialect maps "zion" and "cis" to a dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(s) {
	case "zion", "":
		return Zion, nil
	case "cis", "christinsong":
		return ChristInSong, nil
	}
	return Zion, fmt.Errorf("unknown dialect: %s", s)
}

// TextOptions control flat text output.
type TextOptions struct {
	Dialect Dialect
	// TeluguLabels writes refrain labels in Telugu script.
	TeluguLabels bool
}

// TextWriter writes records as flat tagged text, separated by a blank line.
type TextWriter struct {
	opts TextOptions
	w    *bufio.Writer
	n    int
}

// NewTextWriter returns a writer, call Flush when done.
func NewTextWriter(w io.Writer, opts TextOptions) *TextWriter {
	return &TextWriter{opts: opts, w: bufio.NewWriter(w)}
}

// Write writes a single record.
func (tw *TextWriter) Write(r *song.Record) error {
	if tw.n > 0 {
		if _, err := tw.w.WriteString("\n"); err != nil {
			return err
		}
	}
	tw.n++
	_, err := tw.w.WriteString(FormatText(r, tw.opts))
	return err
}

// Flush flushes buffered output.
func (tw *TextWriter) Flush() error {
	return tw.w.Flush()
}

// WriteText writes all records.
func WriteText(w io.Writer, records []*song.Record, opts TextOptions) error {
	tw := NewTextWriter(w, opts)
	for _, r := range records {
		if err := tw.Write(r); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// FormatText renders a single record, each line terminated by a newline.
func FormatText(r *song.Record, opts TextOptions) string {
	var sb strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&sb, format, args...)
		sb.WriteByte('\n')
	}
	section := func(label string, lines []string) {
		if len(lines) == 0 {
			return
		}
		line("%s%s", label, lines[0])
		for _, l := range lines[1:] {
			line("%s", l)
		}
	}
	switch opts.Dialect {
	case ChristInSong:
		line("SongNumber: %s", r.Number)
		for i, t := range r.Titles {
			if i == 0 {
				line("SongTitle: %s", t.Text)
			} else {
				line("%s Title: %s", t.Lang.Prefix(), t.Text)
			}
		}
		order := r.Order
		if len(order) == 0 {
			order = song.VerseOrder(r)
		}
		line("VerseOrder: %s", song.FormatOrder(order))
		for _, f := range r.Metadata {
			line("%s: %s", f.Key, f.Value)
		}
		section("Chorus1 : ", r.Refrain.Pallavi)
		section("Chorus2 : ", r.Refrain.Anupallavi)
		for i, c := range r.Refrain.Extra {
			section(fmt.Sprintf("Chorus%d : ", i+3), c)
		}
	default:
		line("Song Number: %s", r.Number)
		for _, t := range r.Titles {
			if t.Lang == "" {
				line("Song Title: %s", t.Text)
			} else {
				line("%s Title: %s", t.Lang.Prefix(), t.Text)
			}
		}
		if len(r.Order) > 0 {
			line("VerseOrder: %s", song.FormatOrder(r.Order))
		}
		for _, f := range r.Metadata {
			line("%s: %s", f.Key, f.Value)
		}
		pallavi, anupallavi := "Pallavi : ", "Anupallavi : "
		if opts.TeluguLabels {
			pallavi, anupallavi = "పల్లవి : ", "అనుపల్లవి : "
		}
		section(pallavi, r.Refrain.Pallavi)
		section(anupallavi, r.Refrain.Anupallavi)
		for i, c := range r.Refrain.Extra {
			section(fmt.Sprintf("Chorus%d : ", i+3), c)
		}
	}
	for i, v := range r.Verses {
		section(fmt.Sprintf("%d. ", i+1), v)
	}
	return sb.String()
}
