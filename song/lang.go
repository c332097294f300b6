package song

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Lang is a two letter ISO 639-1 language code. The empty Lang denotes a
// title or text without language, e.g. a generic "Song Title".
type Lang string

const (
	English Lang = "en"
	Telugu  Lang = "te"
	Tamil   Lang = "ta"
	Hindi   Lang = "hi"
	Nepali  Lang = "ne"
)

// Supported languages, in output order.
var Supported = []Lang{English, Telugu, Tamil, Hindi, Nepali}

// ParseLang accepts two or three letter codes in any case, "TE", "tel" and
// "te" all yield Telugu.
func ParseLang(s string) (Lang, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	b, err := language.ParseBase(s)
	if err != nil {
		return "", fmt.Errorf("unknown language %q: %w", s, err)
	}
	return Lang(b.String()), nil
}

// ISO3 returns the three letter code used in sentinel spans, like "tel".
func (l Lang) ISO3() string {
	if l == "" {
		return ""
	}
	b, err := language.ParseBase(string(l))
	if err != nil {
		return string(l)
	}
	return b.ISO3()
}

// Prefix is the upper case label used in flat text, like "TE" in "TE Title:".
func (l Lang) Prefix() string {
	return strings.ToUpper(string(l))
}

// Name returns the English name of the language.
func (l Lang) Name() string {
	if l == "" {
		return ""
	}
	tag, err := language.Parse(string(l))
	if err != nil {
		return string(l)
	}
	return display.English.Languages().Name(tag)
}
