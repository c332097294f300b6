package align

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/zionsongs/songkit/song"
)

var (
	// ExportHeader is the header of the export summary.
	ExportHeader = []string{
		"MasterID", "TeluguNo", "EnglishNo", "TamilNo", "HindiNo",
		"TeluguTitle", "EnglishTitle", "TamilTitle", "HindiTitle",
	}
	// DuplicatesHeader is the header of the duplicates report.
	DuplicatesHeader = []string{
		"TeluguNo", "EnglishNo", "TamilNo", "HindiNo",
		"TeluguTitle", "EnglishTitle", "TamilTitle", "HindiTitle",
		"Reason",
	}
)

func (m *Merged) titles() []string {
	return []string{m.Title(song.Telugu), m.Title(song.English), m.Title(song.Tamil), m.Title(song.Hindi)}
}

// ExportRow is the summary row of an exported song.
func (m *Merged) ExportRow() []string {
	var row []string
	if m.Unmatched {
		row = []string{m.ID, "", "", m.Entry.TamilNumber, m.Entry.HindiNumber}
	} else {
		row = []string{m.ID, m.Entry.SongNumber, m.ID, m.Entry.TamilNumber, m.Entry.HindiNumber}
	}
	return append(row, m.titles()...)
}

// DuplicateRow is the duplicates report row of a skipped song.
func (m *Merged) DuplicateRow() []string {
	var row []string
	reason := "Duplicate entry"
	if m.Unmatched {
		row = []string{"", "", m.Entry.TamilNumber, m.Entry.HindiNumber}
		reason = "Duplicate unmatched " + m.Origin.Name()
	} else {
		row = []string{m.Entry.SongNumber, m.ID, m.Entry.TamilNumber, m.Entry.HindiNumber}
	}
	return append(append(row, m.titles()...), reason)
}

// FileTitle is the title used in file names: the first title in English,
// Telugu, Tamil or Hindi, or the id.
func (m *Merged) FileTitle() string {
	for _, lang := range []song.Lang{song.English, song.Telugu, song.Tamil, song.Hindi} {
		if t := m.Title(lang); t != "" {
			return t
		}
	}
	return m.ID
}

func writeRows(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	return cw.WriteAll(rows)
}

// WriteExportSummary writes one row per exported song.
func WriteExportSummary(w io.Writer, songs []*Merged) error {
	var rows [][]string
	for _, m := range songs {
		rows = append(rows, m.ExportRow())
	}
	return writeRows(w, ExportHeader, rows)
}

// WriteDuplicates writes one row per skipped duplicate.
func WriteDuplicates(w io.Writer, dups []*Merged) error {
	var rows [][]string
	for _, m := range dups {
		rows = append(rows, m.DuplicateRow())
	}
	return writeRows(w, DuplicatesHeader, rows)
}

// Stats counts exported songs.
type Stats struct {
	Matched    int
	Unmatched  map[song.Lang][]string
	Duplicates int
}

// Total number of exported songs.
func (s Stats) Total() int {
	n := s.Matched
	for _, ids := range s.Unmatched {
		n += len(ids)
	}
	return n
}

// Stats summarizes a merge.
func (r *Result) Stats() Stats {
	s := Stats{Unmatched: make(map[song.Lang][]string), Duplicates: len(r.Duplicates)}
	for _, m := range r.Songs {
		if m.Unmatched {
			s.Unmatched[m.Origin] = append(s.Unmatched[m.Origin], m.ID)
		} else {
			s.Matched++
		}
	}
	for _, ids := range s.Unmatched {
		sort.Strings(ids)
	}
	return s
}
