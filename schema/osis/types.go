// Package osis contains the OSIS 2.1 elements needed for a merged, verse
// per line bible export.
package osis

import "encoding/xml"

const (
	Namespace      = "http://www.bibletechnologies.net/2003/OSIS/namespace"
	XSINamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	SchemaLocation = Namespace + " http://www.bibletechnologies.net/osisCore.2.1.1.xsd"
)

// Document is the osis root element.
type Document struct {
	XMLName        xml.Name `xml:"osis"`
	Xmlns          string   `xml:"xmlns,attr"`
	XmlnsXSI       string   `xml:"xmlns:xsi,attr"`
	SchemaLocation string   `xml:"xsi:schemaLocation,attr"`
	Header         Header   `xml:"header"`
	Text           Text     `xml:"osisText"`
}

// Header carries a short description of the work.
type Header struct {
	Work     string `xml:"work"`     // Merged English-Telugu Bible
	Title    string `xml:"title"`    // Merged English-Telugu Bible
	Language string `xml:"language"` // ENG-TEL
}

// Text contains the books.
type Text struct {
	OsisIDWork string `xml:"osisIDWork,attr"` // MergedBible
	Language   string `xml:"language,attr,omitempty"`
	Books      []Div  `xml:"div"`
}

// Div is a book division.
type Div struct {
	Type     string    `xml:"type,attr"`   // book
	OsisID   string    `xml:"osisID,attr"` // Genesis
	Chapters []Chapter `xml:"chapter"`
}

// Chapter groups verses.
type Chapter struct {
	OsisID string  `xml:"osisID,attr"` // Genesis.1
	Verses []Verse `xml:"verse"`
}

// Verse holds the text of all languages.
type Verse struct {
	OsisID string `xml:"osisID,attr"` // Genesis.1.1
	Text   string `xml:",chardata"`
}

// NewDocument returns a document with namespaces set.
func NewDocument(work, language string) *Document {
	return &Document{
		Xmlns:          Namespace,
		XmlnsXSI:       XSINamespace,
		SchemaLocation: SchemaLocation,
		Header:         Header{Work: work, Title: work, Language: language},
		Text:           Text{OsisIDWork: "MergedBible", Language: language},
	}
}
