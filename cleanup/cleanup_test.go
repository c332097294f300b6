package cleanup

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zionsongs/songkit/align"
	"github.com/zionsongs/songkit/convert"
	"github.com/zionsongs/songkit/report"
	"github.com/zionsongs/songkit/song"
)

func TestScrapedClean(t *testing.T) {
	var cases = []struct {
		about  string
		mode   Mode
		input  string
		output string
		issues int
	}{
		{
			about: "english",
			mode:  English,
			input: `.12. Praise The Lord || స్తుతి
Subheading to skip
pallavi: praise-the lord ||2||
sing "loud" to him
A.P.: bless his name
1. he is good
`,
			output: `Song Number: 12
EN Title: Praise The Lord
Pallavi : praise the lord
Sing to him
Anupallavi : bless his name
1. he is good
`,
		},
		{
			about: "telugu with two songs",
			mode:  Telugu,
			input: `.1. Hallelujah హల్లెలూయా
పల్లవి:యేసు
1.ప్రభువా

.2. Second రెండు
2 . junk
1.   మాట
`,
			output: `Song Number: 1
EN Title: Hallelujah
TE Title: హల్లెలూయా
పల్లవి : యేసు
1. ప్రభువా

Song Number: 2
EN Title: Second
TE Title: రెండు
1. మాట
`,
		},
		{
			about: "orphans and missing number",
			mode:  English,
			input: `header junk
.Untitled Song
1. text
`,
			output: `Song Number:
EN Title: Untitled Song
1. text
`,
			issues: 2,
		},
	}
	for _, c := range cases {
		t.Run(c.about, func(t *testing.T) {
			var (
				buf bytes.Buffer
				s   = &Scraped{Mode: c.mode, Source: "test.txt"}
			)
			issues, err := s.Clean(strings.NewReader(c.input), &buf)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(c.output, buf.String()); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
			if len(issues) != c.issues {
				t.Errorf("got %d issues, want %d: %v", len(issues), c.issues, issues)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{English, Telugu, Interleaved} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("got %v, %v, want %v", got, err, m)
		}
	}
	if _, err := ParseMode("tamil"); err == nil {
		t.Errorf("want error")
	}
}

func TestLabeledClean(t *testing.T) {
	catalog, err := align.LoadCatalog(strings.NewReader("SongNumber,TamilNumber\n101,2\n"))
	if err != nil {
		t.Fatal(err)
	}
	l, _ := NewLabeled(song.Tamil, catalog)
	input := `v: ignored
c: இயேசு-நாமம் ||
c: .அன்பு
ec: மகிமை
s2. இரண்டாம்
ch: பாடல்
ch: வரி
s1.முதல்
x: what
`
	rec, issues, err := l.Clean("Tamil/002.txt", strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	got := convert.FormatText(rec, convert.TextOptions{})
	want := `Song Number: 2
Song Title: இயேசு நாமம்
Telugu Reference Number: 101
Pallavi : இயேசு நாமம்
அன்பு
Anupallavi : மகிமை
1. முதல்
2. இரண்டாம்
3. பாடல்
வரி
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if len(issues) != 1 || issues[0].Kind != report.Anomaly {
		t.Errorf("want one unknown label issue, got %v", issues)
	}
}

func TestLabeledCleanFallbacks(t *testing.T) {
	l, _ := NewLabeled(song.Hindi, nil)
	rec, issues, err := l.Clean("007.txt", strings.NewReader("ch: पहला\nch: दूसरा\n"))
	if err != nil {
		t.Fatal(err)
	}
	if rec.FirstTitle() != "पहला" || rec.Get(align.TeluguReference) != TBD {
		t.Errorf("unexpected record: %+v", rec)
	}
	if len(rec.Verses) != 1 || len(rec.Verses[0]) != 2 {
		t.Errorf("want buffered ch lines as one verse, got %v", rec.Verses)
	}
	if len(issues) != 0 {
		t.Errorf("got %v", issues)
	}
	rec, issues, err = l.Clean("008.txt", strings.NewReader("ec: only\n"))
	if err != nil {
		t.Fatal(err)
	}
	if rec.FirstTitle() != "UnknownTitle8" || len(issues) != 1 {
		t.Errorf("want placeholder title and one issue, got %q, %v", rec.FirstTitle(), issues)
	}
	if _, _, err := l.Clean("index.txt", strings.NewReader("c: x\n")); !convert.IsSkip(err) {
		t.Errorf("want skip, got %v", err)
	}
}
