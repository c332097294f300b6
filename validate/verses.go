package validate

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/zionsongs/songkit/song"
)

// WriteVerseReport writes verse count mismatches and songs with invalid
// numbers as plain text.
func WriteVerseReport(w io.Writer, a, b Side) error {
	var (
		bw                  = bufio.NewWriter(w)
		mismatches, invalid = VerseCounts(a, b)
	)
	fmt.Fprintf(bw, "Songs with mismatched verse counts (%s vs %s):\n", a.Lang.Name(), b.Lang.Name())
	for _, m := range mismatches {
		fmt.Fprintf(bw, "Song %s: %s verses=%d, %s verses=%d\n", m.Number, a.Lang.Name(), m.A, b.Lang.Name(), m.B)
	}
	for _, side := range []Side{a, b} {
		fmt.Fprintf(bw, "\nSongs with empty or invalid song numbers in %s:\n", side.Lang.Name())
		for _, r := range invalid[side.Lang] {
			fmt.Fprintf(bw, "%q %s (%d verses)\n", r.Number.String(), r.FirstTitle(), len(r.Verses))
		}
	}
	return bw.Flush()
}

// WriteSongList writes "number. title" lines, e.g. for songs without a
// pallavi.
func WriteSongList(w io.Writer, records []*song.Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		line := strings.TrimSpace(fmt.Sprintf("%s. %s", r.Number, r.FirstTitle()))
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
