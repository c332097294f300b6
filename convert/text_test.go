package convert

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zionsongs/songkit/parse"
	"github.com/zionsongs/songkit/song"
)

func mustParse(t *testing.T, s string) []*song.Record {
	t.Helper()
	result := parse.ParseString(s, parse.DefaultOptions())
	return result.Songs.Sorted()
}

func TestTextRoundTrip(t *testing.T) {
	var cases = []struct {
		about string
		opts  TextOptions
		text  string
	}{
		{
			about: "zion with refrains",
			opts:  TextOptions{Dialect: Zion},
			text: `Song Number: 1
EN Title: Amazing Grace
Telugu Reference Number: 12
Pallavi : Amazing grace
how sweet the sound
Anupallavi : That saved a wretch
1. I once was lost
but now am found
2. Twas grace that taught
`,
		},
		{
			about: "zion with telugu labels",
			opts:  TextOptions{Dialect: Zion, TeluguLabels: true},
			text: `Song Number: 7
TE Title: స్తుతి
పల్లవి : యేసు
1. ప్రభువా
`,
		},
		{
			about: "zion multiple songs and extra chorus",
			opts:  TextOptions{Dialect: Zion},
			text: `Song Number: 2
Song Title: Two
VerseOrder: c1 v1 c3
Pallavi : p
Chorus3 : x
1. a

Song Number: 3
Song Title: Three
1. b
`,
		},
		{
			about: "christ in song",
			opts:  TextOptions{Dialect: ChristInSong},
			text: `SongNumber: 5
SongTitle: Jesus Loves Me
VerseOrder: c1 v1 c1 v2 c1
Chorus1 : Yes, Jesus loves me
1. Jesus loves me this I know
for the bible tells me so
2. Jesus loves me he who died
`,
		},
	}
	for _, c := range cases {
		t.Run(c.about, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteText(&buf, mustParse(t, c.text), c.opts); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(c.text, buf.String()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatTextCanonicalizes(t *testing.T) {
	in := `  song number : 004
title: Lost Sheep
chorus: come home
VERSE 1: first
  second
`
	want := `Song Number: 004
Song Title: Lost Sheep
Pallavi : come home
1. first
second
`
	records := mustParse(t, in)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if diff := cmp.Diff(want, FormatText(records[0], TextOptions{})); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDialect(t *testing.T) {
	for _, s := range []string{"zion", "ZION", ""} {
		if d, err := ParseDialect(s); err != nil || d != Zion {
			t.Errorf("%q: got %v, %v", s, d, err)
		}
	}
	if d, err := ParseDialect("cis"); err != nil || d != ChristInSong {
		t.Errorf("cis: got %v, %v", d, err)
	}
	if _, err := ParseDialect("hymnal"); err == nil {
		t.Errorf("want error for unknown dialect")
	}
}

func TestSafeFilename(t *testing.T) {
	var cases = []struct {
		number, title, want string
	}{
		{"1", "Amazing Grace", "1_Amazing Grace.xml"},
		{"2", `What? A "friend" / we have`, "2_What_ A _friend_ _ we have.xml"},
		{"3", "", "3_3.xml"},
		{"4", `a<b>c:d\e|f*g`, "4_a_b_c_d_e_f_g.xml"},
	}
	for _, c := range cases {
		if got := SafeFilename(c.number, c.title, ".xml"); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}

func TestSkip(t *testing.T) {
	err := SkipError(fmt.Errorf("read: %w", io.ErrUnexpectedEOF))
	if !IsSkip(err) {
		t.Fatalf("want skip, got %v", err)
	}
	if SkipError(nil) != nil {
		t.Fatalf("want nil for nil error")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("want wrapped error kept, got %v", err)
	}
	if !IsSkip(ErrSkipNoLyrics) {
		t.Fatalf("want skip")
	}
}
