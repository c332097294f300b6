// Package bible reads per-language bible sources and merges them into a
// single OSIS document, verse by verse.
package bible

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/antchfx/xmlquery"
	"github.com/zionsongs/songkit/song"
)

// ErrUnknownFormat is returned for documents that are neither Zefania nor
// numbered testament/book/chapter/verse files.
var ErrUnknownFormat = errors.New("unknown bible format")

// Verse is a single verse, numbers are kept as written.
type Verse struct {
	Number string
	Text   string
}

// Chapter lists verses in document order.
type Chapter struct {
	Number string
	Verses []Verse
}

// Book lists chapters in document order.
type Book struct {
	Name     string
	Chapters []*Chapter
}

// Bible is a single language source.
type Bible struct {
	Lang  song.Lang
	Books []*Book
	index map[string]string
}

func key(book, chapter, verse string) string {
	return book + "\x00" + chapter + "\x00" + verse
}

// Text returns the text of a verse, empty if the verse is missing.
func (b *Bible) Text(book, chapter, verse string) string {
	if b == nil {
		return ""
	}
	return b.index[key(book, chapter, verse)]
}

// Len returns the number of verses.
func (b *Bible) Len() int {
	return len(b.index)
}

func (b *Bible) book(name string) *Book {
	for _, bk := range b.Books {
		if bk.Name == name {
			return bk
		}
	}
	bk := &Book{Name: name}
	b.Books = append(b.Books, bk)
	return bk
}

func (b *Bible) add(book *Book, chapter *Chapter, v Verse) {
	chapter.Verses = append(chapter.Verses, v)
	b.index[key(book.Name, chapter.Number, v.Number)] = v.Text
}

// Read parses a bible in Zefania (BIBLEBOOK/CHAPTER/VERS) or numbered
// (testament/book/chapter/verse) layout.
func Read(r io.Reader, lang song.Lang) (*Bible, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	b := &Bible{Lang: lang, index: make(map[string]string)}
	if books := xmlquery.Find(doc, "//BIBLEBOOK"); len(books) > 0 {
		for _, bn := range books {
			book := b.book(NormalizeBook(bn.SelectAttr("bname")))
			for _, cn := range xmlquery.Find(bn, "./CHAPTER") {
				chapter := &Chapter{Number: cn.SelectAttr("cnumber")}
				book.Chapters = append(book.Chapters, chapter)
				for _, vn := range xmlquery.Find(cn, "./VERS") {
					b.add(book, chapter, Verse{Number: vn.SelectAttr("vnumber"), Text: vn.InnerText()})
				}
			}
		}
		return b, nil
	}
	books := xmlquery.Find(doc, "//testament/book")
	if len(books) == 0 {
		return nil, ErrUnknownFormat
	}
	for _, bn := range books {
		book := b.book(BookName(bn.SelectAttr("number")))
		for _, cn := range xmlquery.Find(bn, "./chapter") {
			chapter := &Chapter{Number: cn.SelectAttr("number")}
			book.Chapters = append(book.Chapters, chapter)
			for _, vn := range xmlquery.Find(cn, "./verse") {
				b.add(book, chapter, Verse{Number: vn.SelectAttr("number"), Text: vn.InnerText()})
			}
		}
	}
	return b, nil
}

// ReadFile reads a bible from a file.
func ReadFile(filename string, lang song.Lang) (*Bible, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := Read(f, lang)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return b, nil
}
