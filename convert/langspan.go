package convert

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zionsongs/songkit/song"
)

// Span is text enclosed in {lang-xxx}...{/lang-xxx} sentinels.
type Span struct {
	Code string // three letter code, like "tel"
	Text string
}

var spanPattern = regexp.MustCompile(`(?s)\{lang-([a-z]{2,3})\}(.*?)\{/lang-([a-z]{2,3})\}`)

// Wrap encloses text in language sentinels, using the three letter code.
func Wrap(lang song.Lang, text string) string {
	code := lang.ISO3()
	return fmt.Sprintf("{lang-%s}%s{/lang-%s}", code, text, code)
}

// Spans returns all well formed spans in s, in order. A span whose closing
// code does not match its opening code is ignored.
func Spans(s string) []Span {
	var result []Span
	for _, m := range spanPattern.FindAllStringSubmatch(s, -1) {
		if m[1] != m[3] {
			continue
		}
		result = append(result, Span{Code: m[1], Text: m[2]})
	}
	return result
}

// SpanLanguages lists the distinct language codes found in s.
func SpanLanguages(s string) []string {
	var (
		seen   = make(map[string]bool)
		result []string
	)
	for _, span := range Spans(s) {
		if seen[span.Code] {
			continue
		}
		seen[span.Code] = true
		result = append(result, span.Code)
	}
	return result
}

var sentinelPattern = regexp.MustCompile(`\{/?lang-[a-z]{2,3}\}`)

// StripSpans removes all sentinels and keeps the enclosed text.
func StripSpans(s string) string {
	return strings.TrimSpace(sentinelPattern.ReplaceAllString(s, ""))
}
