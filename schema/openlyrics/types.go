// Package openlyrics contains the subset of the OpenLyrics 0.8 song format
// written by songkit, cf. https://docs.openlyrics.org/.
package openlyrics

import (
	"encoding/xml"
	"strings"
)

const (
	Namespace = "http://openlyrics.info/namespace/2009/song"
	Version   = "0.8"
	// CreatedIn is the application name OpenLP expects for imports.
	CreatedIn = "OpenLP 2.9.5"
	// DateLayout is the layout of the modifiedDate attribute.
	DateLayout = "2006-01-02T15:04:05"
)

// Song was modelled after OpenLP 2.9 exports.
type Song struct {
	XMLName      xml.Name   `xml:"song"`
	Xmlns        string     `xml:"xmlns,attr"`
	Version      string     `xml:"version,attr"`
	CreatedIn    string     `xml:"createdIn,attr"`
	ModifiedIn   string     `xml:"modifiedIn,attr"`
	ModifiedDate string     `xml:"modifiedDate,attr"` // 2025-09-17T12:00:00
	Properties   Properties `xml:"properties"`
	Lyrics       Lyrics     `xml:"lyrics"`
}

// Properties of a song.
type Properties struct {
	Titles     []Title    `xml:"titles>title"`
	VerseOrder string     `xml:"verseOrder,omitempty"` // c1 v1 c1 v2 c1
	Authors    []string   `xml:"authors>author,omitempty"`
	Songbooks  []Songbook `xml:"songbooks>songbook,omitempty"`
}

// Title, optionally with a language.
type Title struct {
	Lang string `xml:"lang,attr,omitempty"`
	Text string `xml:",chardata"`
}

// Songbook reference, entry is the number within the book.
type Songbook struct {
	Name  string `xml:"name,attr"`
	Entry string `xml:"entry,attr,omitempty"`
}

// Lyrics is the list of verses, in definition order.
type Lyrics struct {
	Verses []Verse `xml:"verse"`
}

// Verse is a named section, like v1, c1 or o1.
type Verse struct {
	Name  string  `xml:"name,attr"`
	Lang  string  `xml:"lang,attr,omitempty"`
	Lines []Lines `xml:"lines"`
}

// Lines keeps already escaped markup, so that line breaks are written as
// plain newlines, the way OpenLP writes them.
type Lines struct {
	Inner string `xml:",innerxml"`
}

// NewLines escapes text and keeps newlines as they are.
func NewLines(text string) Lines {
	var sb strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
		}
		_ = xml.EscapeText(&sb, []byte(line))
	}
	return Lines{Inner: sb.String()}
}

// NewSong returns a song with the namespace and version attributes set.
func NewSong(modified string) *Song {
	return &Song{
		Xmlns:        Namespace,
		Version:      Version,
		CreatedIn:    CreatedIn,
		ModifiedIn:   CreatedIn,
		ModifiedDate: modified,
	}
}
