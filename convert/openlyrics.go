package convert

import (
	"encoding/xml"
	"io"
	"strings"
	"time"

	"github.com/zionsongs/songkit/align"
	"github.com/zionsongs/songkit/dateutil"
	"github.com/zionsongs/songkit/schema/openlyrics"
	"github.com/zionsongs/songkit/song"
)

const (
	DefaultAuthor = "His Servant"
	// AltNumberVerse holds alternative song numbers of merged songs.
	AltNumberVerse = "o1"
)

// OpenLyricsOptions control OpenLyrics output.
type OpenLyricsOptions struct {
	// Songbook name, e.g. "Zion Songs" or "Christ in Song".
	Songbook string
	Author   string
	// Modified is written as modifiedDate, beginning of today if zero.
	Modified time.Time
	// Lang wraps the lines of single language songs in sentinels.
	Lang song.Lang
}

func (o OpenLyricsOptions) modified() string {
	t := o.Modified
	if t.IsZero() {
		t = dateutil.Today()
	}
	return t.Format(openlyrics.DateLayout)
}

func (o OpenLyricsOptions) author() string {
	if o.Author == "" {
		return DefaultAuthor
	}
	return o.Author
}

func appendUnique(list []string, v string) []string {
	if v == "" || v == "0" {
		return list
	}
	for _, w := range list {
		if w == v {
			return list
		}
	}
	return append(list, v)
}

// RecordToOpenLyrics converts a single language record. The titles are the
// song titles followed by the song number.
func RecordToOpenLyrics(r *song.Record, opts OpenLyricsOptions) *openlyrics.Song {
	s := openlyrics.NewSong(opts.modified())
	var titles []string
	for _, t := range r.Titles {
		titles = appendUnique(titles, cleanTitle(t.Text))
	}
	if len(titles) == 0 {
		titles = append(titles, PlaceholderTitle(r.Number))
	}
	titles = appendUnique(titles, r.Number.String())
	for _, t := range titles {
		s.Properties.Titles = append(s.Properties.Titles, openlyrics.Title{Text: t})
	}
	order := r.Order
	if len(order) == 0 {
		order = song.VerseOrder(r)
	}
	s.Properties.VerseOrder = song.FormatOrder(order)
	s.Properties.Authors = []string{opts.author()}
	if opts.Songbook != "" {
		s.Properties.Songbooks = []openlyrics.Songbook{{Name: opts.Songbook, Entry: r.Number.String()}}
	}
	add := func(name string, lines []string) {
		if len(lines) == 0 {
			return
		}
		text := strings.Join(lines, "\n")
		if opts.Lang != "" {
			text = Wrap(opts.Lang, text)
		}
		s.Lyrics.Verses = append(s.Lyrics.Verses, openlyrics.Verse{
			Name:  name,
			Lines: []openlyrics.Lines{openlyrics.NewLines(text)},
		})
	}
	add(song.PallaviName, r.Refrain.Pallavi)
	add(song.AnupallaviName, r.Refrain.Anupallavi)
	for i, c := range r.Refrain.Extra {
		add(song.ChorusName(i+3), c)
	}
	for i, v := range r.Verses {
		add(song.VerseName(i+1), v)
	}
	return s
}

// MergedTitles computes the title list of a merged song: English and Telugu
// titles, the id and the mapped numbers. Songs without English and Telugu
// text use the titles and numbers of the remaining languages.
func MergedTitles(m *align.Merged) []string {
	var titles []string
	if m.Title(song.English) != "" || m.Title(song.Telugu) != "" {
		titles = appendUnique(titles, m.Title(song.English))
		titles = appendUnique(titles, m.Title(song.Telugu))
		titles = appendUnique(titles, m.ID)
		titles = appendUnique(titles, m.Entry.SongNumber)
		titles = appendUnique(titles, m.Entry.TamilNumber)
		titles = appendUnique(titles, m.Entry.HindiNumber)
		return titles
	}
	for _, lang := range m.Langs {
		if lang == song.English || lang == song.Telugu {
			continue
		}
		title := m.Title(lang)
		if title == "" {
			continue
		}
		titles = appendUnique(titles, title)
		if n := m.Entry.Number(lang); n != "" {
			titles = appendUnique(titles, n)
		} else {
			titles = appendUnique(titles, m.ID)
		}
	}
	if len(titles) == 0 {
		titles = append(titles, m.ID)
	}
	return titles
}

// AltNumbersText renders the alternative numbers of a song as sentinel
// lines, in reverse catalog column order.
func AltNumbersText(e align.Entry, id string) string {
	master := strings.TrimSpace(e.SongNumber)
	if master == "" || master == "0" {
		master = id
	}
	values := appendUnique(nil, master)
	for _, v := range []string{e.V1TeluguNo, e.V2TeluguNo, e.TamilNumber, e.HindiNumber} {
		values = appendUnique(values, strings.TrimSpace(v))
	}
	var sb strings.Builder
	for i := len(values) - 1; i >= 0; i-- {
		sb.WriteString("{alt_number}" + values[i] + "{/alt_number}\n")
	}
	return sb.String()
}

// MergedToOpenLyrics converts a merged song: every section has one lines
// element per language with text, wrapped in language sentinels.
func MergedToOpenLyrics(m *align.Merged, opts OpenLyricsOptions) *openlyrics.Song {
	s := openlyrics.NewSong(opts.modified())
	for _, t := range MergedTitles(m) {
		s.Properties.Titles = append(s.Properties.Titles, openlyrics.Title{Text: t})
	}
	s.Properties.VerseOrder = song.FormatOrder(m.Order())
	s.Properties.Authors = []string{opts.author()}
	if opts.Songbook != "" {
		s.Properties.Songbooks = []openlyrics.Songbook{{Name: opts.Songbook, Entry: m.ID}}
	}
	for _, section := range m.Sections() {
		v := openlyrics.Verse{Name: section.Name}
		for _, t := range section.Texts {
			if len(t.Lines) == 0 {
				continue
			}
			v.Lines = append(v.Lines, openlyrics.NewLines(Wrap(t.Lang, strings.Join(t.Lines, "\n"))))
		}
		if len(v.Lines) == 0 {
			continue
		}
		s.Lyrics.Verses = append(s.Lyrics.Verses, v)
	}
	if alt := AltNumbersText(m.Entry, m.ID); alt != "" {
		s.Lyrics.Verses = append(s.Lyrics.Verses, openlyrics.Verse{
			Name:  AltNumberVerse,
			Lines: []openlyrics.Lines{openlyrics.NewLines(alt)},
		})
	}
	return s
}

// WriteOpenLyrics writes a song as an indented XML document.
func WriteOpenLyrics(w io.Writer, s *openlyrics.Song) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(s); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
