package feeds

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ZionBookURL is the index of the songsofzion.org songbook.
const ZionBookURL = "https://songsofzion.org/book/1"

// ZionSong is a song page of songsofzion.org.
type ZionSong struct {
	Number  string
	Title   string
	English []string
	Telugu  []string
}

// Layout of a raw zion dump.
type Layout int

const (
	EnglishLayout Layout = iota
	TeluguLayout
	// InterleavedLayout alternates English and Telugu blocks, chorus
	// lines prefixed "CHORUS EN:" and "CHORUS TE:", others "EN:" and "TE:".
	InterleavedLayout
)

// ParseLayout parses "english", "telugu" or "interleaved".
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(s) {
	case "english", "en":
		return EnglishLayout, nil
	case "telugu", "te":
		return TeluguLayout, nil
	case "interleaved":
		return InterleavedLayout, nil
	}
	return EnglishLayout, fmt.Errorf("unknown layout: %s", s)
}

// textLines returns the trimmed, non-empty text nodes below a selection,
// one per line.
func textLines(s *goquery.Selection) []string {
	var lines []string
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			if t := strings.TrimSpace(c.Text()); t != "" {
				lines = append(lines, t)
			}
			return
		}
		lines = append(lines, textLines(c)...)
	})
	return lines
}

// ParseZionIndex returns absolute song links from the book index.
func ParseZionIndex(r io.Reader, base string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	var links []string
	doc.Find("div.book-song-div-a a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		if ref, err := u.Parse(href); err == nil {
			links = append(links, ref.String())
		}
	})
	return links, nil
}

// ParseZionSong extracts number, title and lyrics of a song page. The
// heading reads "12. Title"; without a number, the heading is the title.
func ParseZionSong(r io.Reader) (*ZionSong, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	h4 := strings.TrimSpace(doc.Find("h4").First().Text())
	if h4 == "" {
		return nil, fmt.Errorf("no song heading")
	}
	s := &ZionSong{Title: h4}
	if strings.Contains(h4, ". ") {
		parts := strings.SplitN(h4, ".", 2)
		s.Number, s.Title = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	tab := doc.Find("div.tab-content").First()
	s.English = textLines(tab.Find(`div[id*="English"]`).First())
	s.Telugu = textLines(tab.Find(`div[id*="Translation"]`).First())
	return s, nil
}

type block struct {
	chorus bool
	lines  []string
}

// splitBlocks splits lyrics at chorus lines, marked with "||". Every chorus
// line is a block of its own.
func splitBlocks(lines []string) []block {
	var (
		blocks []block
		cur    []string
	)
	for _, line := range lines {
		if !strings.Contains(line, "||") {
			cur = append(cur, line)
			continue
		}
		if len(cur) > 0 {
			blocks = append(blocks, block{lines: cur})
			cur = nil
		}
		blocks = append(blocks, block{chorus: true, lines: []string{strings.TrimSpace(strings.ReplaceAll(line, "||", ""))}})
	}
	if len(cur) > 0 {
		blocks = append(blocks, block{lines: cur})
	}
	return blocks
}

// Format renders a song in a layout, followed by a blank line.
func (s *ZionSong) Format(layout Layout) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s. %s\n", s.Number, s.Title)
	switch layout {
	case TeluguLayout:
		for _, line := range s.Telugu {
			buf.WriteString(line + "\n")
		}
	case InterleavedLayout:
		var (
			en = splitBlocks(s.English)
			te = splitBlocks(s.Telugu)
			n  = len(en)
		)
		if len(te) > n {
			n = len(te)
		}
		write := func(b block, lang string) {
			prefix := lang + ":"
			if b.chorus {
				prefix = "CHORUS " + prefix
			}
			for _, line := range b.lines {
				fmt.Fprintf(&buf, "%s %s\n", prefix, line)
			}
		}
		for i := 0; i < n; i++ {
			if i < len(en) {
				write(en[i], "EN")
			}
			if i < len(te) {
				write(te[i], "TE")
			}
			buf.WriteString("\n")
		}
		return buf.String()
	default:
		for _, line := range s.English {
			buf.WriteString(line + "\n")
		}
	}
	buf.WriteString("\n")
	return buf.String()
}

// WriteZion writes songs in a layout.
func WriteZion(w io.Writer, songs []*ZionSong, layout Layout) error {
	bw := bufio.NewWriter(w)
	for _, s := range songs {
		if _, err := bw.WriteString(s.Format(layout)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FetchZion fetches the book index and every song page. Pages that fail
// are passed to skip and left out.
func (f *Fetcher) FetchZion(bookURL string, skip func(link string, err error)) ([]*ZionSong, error) {
	b, err := f.GetCached(bookURL)
	if err != nil {
		return nil, err
	}
	links, err := ParseZionIndex(bytes.NewReader(b), bookURL)
	if err != nil {
		return nil, err
	}
	f.logger().Infof("found %d songs", len(links))
	var songs []*ZionSong
	for i, link := range links {
		b, err := f.Get(link)
		if err == nil {
			var s *ZionSong
			if s, err = ParseZionSong(bytes.NewReader(b)); err == nil {
				songs = append(songs, s)
				f.logger().Infof("%d/%d: processed %q", i+1, len(links), s.Title)
				continue
			}
		}
		if skip != nil {
			skip(link, err)
		}
	}
	return songs, nil
}
