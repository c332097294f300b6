// Package convert reads and writes song records in flat text, OpenLyrics XML
// and JSON lines.
package convert

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/zionsongs/songkit/song"
)

// Skip marks an input that is not converted at all; the caller logs the
// reason and continues with the next input.
type Skip struct {
	err error
}

func (s Skip) Error() string {
	return s.err.Error()
}

func (s Skip) Unwrap() error {
	return s.err
}

var (
	ErrSkipNoSong   = Skip{err: errors.New("no song element")}
	ErrSkipNoLyrics = Skip{err: errors.New("no lyrics")}
)

// SkipError wraps an error as a Skip.
func SkipError(err error) error {
	if err == nil {
		return nil
	}
	var s Skip
	if errors.As(err, &s) {
		return err
	}
	return Skip{err: err}
}

// IsSkip reports whether err, or any error it wraps, is a Skip.
func IsSkip(err error) bool {
	var s Skip
	return errors.As(err, &s)
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespace          = regexp.MustCompile(`\s+`)
)

// SafeFilename returns "{number}_{title}.xml" with characters not allowed
// in file names replaced.
func SafeFilename(number, title, ext string) string {
	if title == "" {
		title = number
	}
	title = unsafeFilenameChars.ReplaceAllString(title, "_")
	return fmt.Sprintf("%s_%s%s", number, title, ext)
}

// PlaceholderTitle is used when a song has no title at all.
func PlaceholderTitle(n song.Number) string {
	return "UnknownTitle" + n.String()
}

// cleanTitle collapses whitespace and strips a leading label.
func cleanTitle(title string) string {
	if title == "" {
		return ""
	}
	title = strings.TrimSpace(title)
	title = whitespace.ReplaceAllString(title, " ")
	prefixes := []string{"Title:", "TITLE:", "Song Title:"}
	for _, prefix := range prefixes {
		if strings.HasPrefix(title, prefix) {
			title = strings.TrimSpace(strings.TrimPrefix(title, prefix))
		}
	}
	return title
}
