package validate

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/zionsongs/songkit/align"
	"github.com/zionsongs/songkit/normal"
	"github.com/zionsongs/songkit/song"
)

// NotAvailable fills cells of the titles report without a value.
const NotAvailable = "Not available"

// TitlesHeader is the header of the titles report.
var TitlesHeader = []string{"TeluguNumber", "EnglishTitle", "TamilNumber", "TamilTitle", "HindiNumber", "HindiTitle"}

// titleOf returns the title of a song in a language, any title if fallback
// is set.
func titleOf(c *song.Collection, number string, lang song.Lang, fallback bool) string {
	if number == "" {
		return NotAvailable
	}
	r, ok := c.Get(song.ParseNumber(number).Key())
	if !ok {
		return NotAvailable
	}
	t := r.Title(lang)
	if t == "" && fallback {
		t = r.FirstTitle()
	}
	if t == "" {
		return NotAvailable
	}
	return normal.ReplaceNewlineAndTab(t)
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// TitleRows lists every catalog entry with the English title of the Telugu
// song and the Tamil and Hindi titles, followed by rows for Tamil and Hindi
// songs that no catalog entry refers to.
func TitleRows(catalog *align.Catalog, telugu, tamil, hindi *song.Collection) [][]string {
	var rows [][]string
	for _, e := range catalog.Entries {
		if strings.TrimSpace(e.SongNumber) == "" {
			continue
		}
		var (
			tam = e.Number(song.Tamil)
			hin = e.Number(song.Hindi)
		)
		rows = append(rows, []string{
			e.SongNumber,
			titleOf(telugu, e.SongNumber, song.English, false),
			orZero(tam), titleOf(tamil, tam, song.Tamil, true),
			orZero(hin), titleOf(hindi, hin, song.Hindi, true),
		})
	}
	for _, r := range tamil.Sorted() {
		if catalog.References(song.Tamil, r.Number.String()) {
			continue
		}
		rows = append(rows, []string{"0", NotAvailable, r.Number.String(), titleOf(tamil, r.Number.String(), song.Tamil, true), "0", NotAvailable})
	}
	for _, r := range hindi.Sorted() {
		if catalog.References(song.Hindi, r.Number.String()) {
			continue
		}
		rows = append(rows, []string{"0", NotAvailable, "0", NotAvailable, r.Number.String(), titleOf(hindi, r.Number.String(), song.Hindi, true)})
	}
	return rows
}

// WriteTitles writes the titles report as CSV.
func WriteTitles(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TitlesHeader); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("titles report: %w", err)
	}
	return nil
}

// Listing builds catalog entries from a Telugu collection: number, Telugu
// and English title and the Tamil and Hindi numbers given as metadata.
// Songs without a valid number are left out.
func Listing(c *song.Collection) []align.Entry {
	var entries []align.Entry
	for _, r := range c.Records() {
		if !r.Number.IsKnown() {
			continue
		}
		entries = append(entries, align.Entry{
			SongNumber:   r.Number.String(),
			TeluguTitle:  r.Title(song.Telugu),
			EnglishTitle: r.Title(song.English),
			TamilNumber:  metadata(r, "TamilNumber", "Tamil Number"),
			HindiNumber:  metadata(r, "HindiNumber", "Hindi Number"),
			NepaliNumber: metadata(r, "NepaliNumber", "Nepali Number"),
		})
	}
	return entries
}

func metadata(r *song.Record, keys ...string) string {
	for _, k := range keys {
		if v := r.Get(k); v != "" {
			return v
		}
	}
	return ""
}
