package convert

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/zionsongs/songkit/song"
)

var (
	chordLine   = regexp.MustCompile(`^[A-G][#b]?(m|min|maj|dim|aug)?\d*(/[A-G][#b]?(m|min|maj|dim|aug)?\d*)*$`)
	labelLine   = regexp.MustCompile(`(?i)^(verse|chorus|bridge|tag|refrain)\b`)
	leadingNum  = regexp.MustCompile(`^\s*(\d+)\b\s*(.*)$`)
	chorusName  = regexp.MustCompile(`^c(\d+)$`)
	verseName   = regexp.MustCompile(`^v(\d+)`)
	songExpr    = xpath.MustCompile(`//*[local-name()='song']`)
	titleExpr   = xpath.MustCompile(`./*[local-name()='properties']/*[local-name()='titles']/*[local-name()='title']`)
	orderExpr   = xpath.MustCompile(`./*[local-name()='properties']/*[local-name()='verseOrder']`)
	entryExpr   = xpath.MustCompile(`./*[local-name()='properties']/*[local-name()='songbooks']/*[local-name()='songbook']`)
	verseExpr   = xpath.MustCompile(`./*[local-name()='lyrics']/*[local-name()='verse']`)
	linesExpr   = xpath.MustCompile(`./*[local-name()='lines']`)
	unknownSong = song.Unresolved("Unknown", "no number in titles or songbook")
)

// CleanLines splits text into lines, trims them and drops empty lines,
// chord-only lines and section labels like "Verse 1".
func CleanLines(text string) []string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || chordLine.MatchString(line) || labelLine.MatchString(line) {
			continue
		}
		result = append(result, line)
	}
	return result
}

// linesText returns the text of a lines element, where br elements are
// line breaks. Text inside other child elements, like chords, is ignored.
func linesText(n *xmlquery.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			sb.WriteString(c.Data)
		case xmlquery.ElementNode:
			if c.Data == "br" {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

// ReadOpenLyrics reads a single OpenLyrics song. The song number comes from
// the second title, a number leading the only title, or the songbook
// entry, in this order. Numbered choruses map to pallavi (c1), anupallavi
// (c2) and further choruses; split verses like v1a and v1b are merged.
// Language sentinels are removed.
func ReadOpenLyrics(r io.Reader) (*song.Record, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, SkipError(fmt.Errorf("parse: %w", err))
	}
	root := xmlquery.QuerySelector(doc, songExpr)
	if root == nil {
		return nil, ErrSkipNoSong
	}
	rec := &song.Record{Number: unknownSong}
	titles := xmlquery.QuerySelectorAll(root, titleExpr)
	switch {
	case len(titles) > 1 && strings.TrimSpace(titles[0].InnerText()) != "":
		rec.SetTitle("", cleanTitle(StripSpans(titles[0].InnerText())))
		if n := song.ParseNumber(titles[1].InnerText()); n.IsKnown() {
			rec.Number = n
		}
	case len(titles) == 1 && strings.TrimSpace(titles[0].InnerText()) != "":
		full := strings.TrimSpace(titles[0].InnerText())
		if m := leadingNum.FindStringSubmatch(full); m != nil {
			rec.Number = song.ParseNumber(m[1])
			if rest := strings.TrimSpace(m[2]); rest != "" {
				full = rest
			}
		}
		rec.SetTitle("", cleanTitle(full))
	}
	if !rec.Number.IsKnown() {
		if sb := xmlquery.QuerySelector(root, entryExpr); sb != nil {
			if n := song.ParseNumber(sb.SelectAttr("entry")); n.IsKnown() {
				rec.Number = n
			}
		}
	}
	if o := xmlquery.QuerySelector(root, orderExpr); o != nil {
		rec.Order = strings.Fields(o.InnerText())
	}
	var (
		choruses  = make(map[int][]string)
		verses    = make(map[int][]string)
		other     [][]string
		maxChorus int
	)
	for _, v := range xmlquery.QuerySelectorAll(root, verseExpr) {
		name := strings.ToLower(strings.TrimSpace(v.SelectAttr("name")))
		var texts []string
		for _, l := range xmlquery.QuerySelectorAll(v, linesExpr) {
			texts = append(texts, StripSpans(linesText(l)))
		}
		lines := CleanLines(strings.Join(texts, "\n"))
		if len(lines) == 0 {
			continue
		}
		switch {
		case strings.HasPrefix(name, "c"):
			num := -1
			if m := chorusName.FindStringSubmatch(name); m != nil {
				if v, err := strconv.Atoi(m[1]); err == nil && v <= song.MaxChorus {
					num = v
				}
			}
			if num < 0 {
				// unnumbered or unreadable, next free chorus
				num = maxChorus + 1
				for hasChorus(choruses, num) {
					num++
				}
			}
			if num > maxChorus {
				maxChorus = num
			}
			choruses[num] = append(choruses[num], lines...)
		case strings.HasPrefix(name, "v"):
			if m := verseName.FindStringSubmatch(name); m != nil {
				num, _ := strconv.Atoi(m[1])
				verses[num] = append(verses[num], lines...)
			} else {
				other = append(other, lines)
			}
		case strings.HasPrefix(name, "o"):
			// alternative numbers, not lyrics
		default:
			other = append(other, lines)
		}
	}
	var chorusKeys []int
	for k := range choruses {
		chorusKeys = append(chorusKeys, k)
	}
	sort.Ints(chorusKeys)
	for _, num := range chorusKeys {
		lines := choruses[num]
		switch {
		case num <= 1:
			rec.Refrain.Pallavi = append(rec.Refrain.Pallavi, lines...)
		case num == 2:
			rec.Refrain.Anupallavi = lines
		default:
			for len(rec.Refrain.Extra) < num-2 {
				rec.Refrain.Extra = append(rec.Refrain.Extra, nil)
			}
			rec.Refrain.Extra[num-3] = lines
		}
	}
	var keys []int
	for k := range verses {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		rec.Verses = append(rec.Verses, song.Verse(verses[k]))
	}
	for _, lines := range other {
		rec.Verses = append(rec.Verses, song.Verse(lines))
	}
	if !rec.HasLyrics() {
		return rec, ErrSkipNoLyrics
	}
	return rec, nil
}

// hasChorus reports whether a chorus bucket is taken; c0 and c1 share the
// pallavi.
func hasChorus(choruses map[int][]string, num int) bool {
	if num <= 1 {
		return len(choruses[0]) > 0 || len(choruses[1]) > 0
	}
	return len(choruses[num]) > 0
}
