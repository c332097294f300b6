package feeds

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/zionsongs/songkit/song"
)

// MemphisURL is the songbook home page, listing all songs.
const MemphisURL = "https://songbooks.memphissaints.org/"

// ParseMemphisIndex returns the distinct song links ("?p=123") of the home
// page, sorted.
func ParseMemphisIndex(r io.Reader, base string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	container := doc.Find("div.otw-row.otw_blog_manager-blog-item-holder")
	if container.Length() == 0 {
		return nil, fmt.Errorf("no song container found")
	}
	var (
		seen   = make(map[string]bool)
		links  []string
		prefix = strings.TrimRight(base, "/") + "/?p="
	)
	container.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !strings.HasPrefix(href, prefix) || seen[href] {
			return
		}
		seen[href] = true
		links = append(links, href)
	})
	sort.Strings(links)
	return links, nil
}

// paragraphText returns the text of a paragraph, br elements are line
// breaks.
func paragraphText(p *goquery.Selection) string {
	var sb strings.Builder
	p.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "br" {
			sb.WriteString("\n")
			return
		}
		sb.WriteString(strings.TrimSpace(c.Text()))
	})
	return strings.TrimSpace(sb.String())
}

// isChorus guesses chorus paragraphs: labeled ones and a few known
// refrains without label.
func isChorus(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(text, "Chorus") ||
		strings.HasPrefix(lower, "close to") ||
		strings.HasPrefix(lower, "draw me")
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ParseMemphisSong builds a record from a song page. Consecutive paragraphs
// form a verse, an empty paragraph ends it; chorus paragraphs become
// numbered choruses. The song number is the "p" parameter of the link.
func ParseMemphisSong(r io.Reader, link string) (*song.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(doc.Find("h1.entry-title").First().Text())
	if title == "" {
		title = "Unknown Title"
	}
	content := doc.Find("div.entry-content").First()
	if content.Length() == 0 {
		return nil, fmt.Errorf("no lyrics found for %s", title)
	}
	rec := &song.Record{Number: song.Unresolved("", "no song id in link")}
	if u, err := url.Parse(link); err == nil {
		if p := u.Query().Get("p"); p != "" {
			rec.Number = song.ParseNumber(p)
		}
	}
	rec.SetTitle("", title)
	var (
		verse    []string
		choruses int
	)
	flush := func() {
		if len(verse) == 0 {
			return
		}
		rec.Verses = append(rec.Verses, song.Verse(verse))
		rec.Order = append(rec.Order, song.VerseName(len(rec.Verses)))
		verse = nil
	}
	content.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := paragraphText(p)
		switch {
		case text == "":
			flush()
		case isChorus(text):
			choruses++
			lines := splitLines(text)
			switch choruses {
			case 1:
				rec.Refrain.Pallavi = lines
			case 2:
				rec.Refrain.Anupallavi = lines
			default:
				rec.Refrain.Extra = append(rec.Refrain.Extra, lines)
			}
			rec.Order = append(rec.Order, song.ChorusName(choruses))
		default:
			verse = append(verse, splitLines(text)...)
		}
	})
	flush()
	return rec, nil
}

// FetchMemphis fetches the home page and every song page. Pages that fail
// are passed to skip and left out.
func (f *Fetcher) FetchMemphis(home string, skip func(link string, err error)) ([]*song.Record, error) {
	b, err := f.GetCached(home)
	if err != nil {
		return nil, err
	}
	links, err := ParseMemphisIndex(bytes.NewReader(b), home)
	if err != nil {
		return nil, err
	}
	f.logger().Infof("found %d songs", len(links))
	var records []*song.Record
	for _, link := range links {
		b, err := f.Get(link)
		if err == nil {
			var rec *song.Record
			if rec, err = ParseMemphisSong(bytes.NewReader(b), link); err == nil {
				records = append(records, rec)
				f.logger().WithField("url", link).Infof("processed %q", rec.FirstTitle())
				continue
			}
		}
		if skip != nil {
			skip(link, err)
		}
	}
	return records, nil
}
