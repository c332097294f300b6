package bible

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/zionsongs/songkit/convert"
	"github.com/zionsongs/songkit/report"
	"github.com/zionsongs/songkit/schema/osis"
	"github.com/zionsongs/songkit/song"
)

// Merger combines bibles of several languages. The primary bible defines
// books, chapters and verses and their order; all bibles, the primary
// included, contribute a span to every verse, in the order given.
type Merger struct {
	Primary *Bible
	Bibles  []*Bible
}

// Work returns a description like "Merged English-Telugu Bible".
func (m *Merger) Work() string {
	var names []string
	for _, b := range m.Bibles {
		names = append(names, b.Lang.Name())
	}
	return fmt.Sprintf("Merged %s Bible", strings.Join(names, "-"))
}

// Language returns the upper case codes, like "ENG-TEL".
func (m *Merger) Language() string {
	var codes []string
	for _, b := range m.Bibles {
		codes = append(codes, strings.ToUpper(b.Lang.ISO3()))
	}
	return strings.Join(codes, "-")
}

// VerseText renders the spans of all languages for a single verse. Missing
// verses keep an empty span.
func VerseText(chapter, verse string, texts []string, langs []song.Lang) string {
	spans := make([]string, len(langs))
	for i, lang := range langs {
		spans[i] = convert.Wrap(lang, fmt.Sprintf("<sup>%s:%s</sup>%s", chapter, verse, texts[i]))
	}
	return strings.Join(spans, " ")
}

// Merge returns the OSIS document and one issue per language and verse that
// is missing or empty.
func (m *Merger) Merge() (*osis.Document, []report.Issue) {
	var (
		doc    = osis.NewDocument(m.Work(), m.Language())
		issues []report.Issue
		langs  = make([]song.Lang, len(m.Bibles))
	)
	for i, b := range m.Bibles {
		langs[i] = b.Lang
	}
	for _, book := range m.Primary.Books {
		div := osis.Div{Type: "book", OsisID: book.Name}
		for _, chapter := range book.Chapters {
			c := osis.Chapter{OsisID: fmt.Sprintf("%s.%s", book.Name, chapter.Number)}
			for _, verse := range chapter.Verses {
				texts := make([]string, len(m.Bibles))
				for i, b := range m.Bibles {
					texts[i] = strings.TrimSpace(b.Text(book.Name, chapter.Number, verse.Number))
					if texts[i] == "" {
						issues = append(issues, report.Issue{
							Kind:   report.MissingCounterpart,
							Source: b.Lang.Name(),
							Message: fmt.Sprintf("Missing %s verse for %s %s:%s",
								b.Lang.Name(), book.Name, chapter.Number, verse.Number),
						})
					}
				}
				c.Verses = append(c.Verses, osis.Verse{
					OsisID: fmt.Sprintf("%s.%s.%s", book.Name, chapter.Number, verse.Number),
					Text:   VerseText(chapter.Number, verse.Number, texts, langs),
				})
			}
			div.Chapters = append(div.Chapters, c)
		}
		doc.Text.Books = append(doc.Text.Books, div)
	}
	return doc, issues
}

// Write writes an OSIS document with an XML declaration.
func Write(w io.Writer, doc *osis.Document) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
