package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zionsongs/songkit/report"
	"github.com/zionsongs/songkit/song"
)

func countKind(issues []report.Issue, kind report.Kind) int {
	var n int
	for _, issue := range issues {
		if issue.Kind == kind {
			n++
		}
	}
	return n
}

func TestParseExample(t *testing.T) {
	input := "Song Number: 5\nEN Title: Grace\nPallavi : Amazing\ngrace\n1. How sweet\nthe sound\n"
	result := ParseString(input, DefaultOptions())
	if result.Songs.Len() != 1 {
		t.Fatalf("want 1 song, got %d", result.Songs.Len())
	}
	got := result.Songs.Records()[0]
	want := &song.Record{
		Number:  song.Known(5),
		Titles:  []song.Title{{Lang: song.English, Text: "Grace"}},
		Refrain: song.Refrain{Pallavi: []string{"Amazing", "grace"}},
		Verses:  []song.Verse{{"How sweet", "the sound"}},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(song.Number{})); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	if order := song.FormatOrder(song.VerseOrder(got)); order != "c1 v1 c1" {
		t.Errorf("want order c1 v1 c1, got %s", order)
	}
	if len(result.Issues) != 0 {
		t.Errorf("want no issues, got %v", result.Issues)
	}
}

func TestParseConsecutiveBoundaries(t *testing.T) {
	input := "Song Number: 1\nSong Number: 2\nEN Title: Two\n1. line\n"
	result := ParseString(input, DefaultOptions())
	if result.Songs.Len() != 1 {
		t.Fatalf("want 1 song, got %d", result.Songs.Len())
	}
	if n := result.Songs.Records()[0].Number.Value(); n != 2 {
		t.Errorf("want song 2, got %d", n)
	}
	if countKind(result.Issues, report.Anomaly) != 1 {
		t.Errorf("want one dropped song reported, got %v", result.Issues)
	}
}

func TestParseNoEmptyVerses(t *testing.T) {
	input := "Song Number: 1\nEN Title: T\n1.\n2. second\n3.   \n\n4. fourth\n"
	result := ParseString(input, DefaultOptions())
	r := result.Songs.Records()[0]
	want := []song.Verse{{"second"}, {"fourth"}}
	if diff := cmp.Diff(want, r.Verses); diff != "" {
		t.Errorf("verses mismatch (-want +got):\n%s", diff)
	}
	for i, v := range r.Verses {
		if len(v) == 0 {
			t.Errorf("verse %d is empty", i)
		}
	}
}

func TestParseMissingNumber(t *testing.T) {
	input := "Song Number:\nEN Title: A\n1. a\n\nSong Number: \nEN Title: B\n1. b\n"
	result := ParseString(input, DefaultOptions())
	var got []string
	for _, r := range result.Songs.Records() {
		got = append(got, r.Number.String())
	}
	if diff := cmp.Diff([]string{"Unknown1", "Unknown2"}, got); diff != "" {
		t.Errorf("placeholder mismatch (-want +got):\n%s", diff)
	}
	if countKind(result.Issues, report.MissingField) != 2 {
		t.Errorf("want 2 missing field issues, got %v", result.Issues)
	}
}

func TestParseDuplicateReplaces(t *testing.T) {
	input := "Song Number: 1\nEN Title: A\n1. a\nSong Number: 2\nEN Title: B\n1. b\nSong Number: 1\nEN Title: C\n1. c\n"
	result := ParseString(input, DefaultOptions())
	if result.Songs.Len() != 2 {
		t.Fatalf("want 2 songs, got %d", result.Songs.Len())
	}
	if title := result.Songs.Records()[0].Title(song.English); title != "C" {
		t.Errorf("want replacement in place, got %s", title)
	}
	if countKind(result.Issues, report.Duplicate) != 1 {
		t.Errorf("want one duplicate issue, got %v", result.Issues)
	}
}

func TestParseVerseBeforeRefrain(t *testing.T) {
	input := "Song Number: 3\nEN Title: X\n1. first\nPallavi : refrain\n2. second\n"
	result := ParseString(input, DefaultOptions())
	r := result.Songs.Records()[0]
	if len(r.Verses) != 2 || len(r.Refrain.Pallavi) != 1 {
		t.Errorf("sections must be kept as found, got %+v", r)
	}
	if countKind(result.Issues, report.Anomaly) != 1 {
		t.Errorf("want anomaly reported, got %v", result.Issues)
	}
}

func TestParseMalformedMarker(t *testing.T) {
	input := "SongNumber: 9\nSongTitle: M\nVerse a: one\nVerse b: two\nChorusX : sing\n"
	result := ParseString(input, DefaultOptions())
	r := result.Songs.Records()[0]
	if len(r.Verses) != 2 {
		t.Errorf("want 2 auto indexed verses, got %d", len(r.Verses))
	}
	if len(r.Refrain.Pallavi) != 1 {
		t.Errorf("want unnumbered chorus as c1, got %+v", r.Refrain)
	}
	if countKind(result.Issues, report.MalformedMarker) != 3 {
		t.Errorf("want 3 malformed marker issues, got %v", result.Issues)
	}
}

func TestParseChorusNumberOutOfRange(t *testing.T) {
	var cases = []struct {
		about string
		input string
		want  song.Refrain
	}{
		{
			about: "overflowing int",
			input: "SongNumber: 1\nSongTitle: x\nChorus99999999999999 : boom\n1. a\n",
			want:  song.Refrain{Pallavi: []string{"boom"}},
		},
		{
			about: "above limit",
			input: "SongNumber: 1\nSongTitle: x\nChorus1 : one\nChorus2000000000 : two\n1. a\n",
			want:  song.Refrain{Pallavi: []string{"one"}, Anupallavi: []string{"two"}},
		},
		{
			about: "fills the next free chorus",
			input: "SongNumber: 1\nSongTitle: x\nChorus1 : one\nChorus2 : two\nChorus4 : four\nChorus100 : more\n",
			want: song.Refrain{
				Pallavi:    []string{"one"},
				Anupallavi: []string{"two"},
				Extra:      [][]string{{"more"}, {"four"}},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.about, func(t *testing.T) {
			result := ParseString(c.input, DefaultOptions())
			r := result.Songs.Records()[0]
			if diff := cmp.Diff(c.want, r.Refrain); diff != "" {
				t.Errorf("refrain mismatch (-want +got):\n%s", diff)
			}
			if countKind(result.Issues, report.MalformedMarker) != 1 {
				t.Errorf("want 1 malformed marker issue, got %v", result.Issues)
			}
		})
	}
}

func TestParseChoruses(t *testing.T) {
	input := "SongNumber: 4\nSongTitle: C\nVerseOrder: v1 c1 v2 c3\nChorus1 : one\nChorus3 : three\n1. a\n2. b\n"
	result := ParseString(input, DefaultOptions())
	r := result.Songs.Records()[0]
	want := song.Refrain{Pallavi: []string{"one"}, Extra: [][]string{{"three"}}}
	if diff := cmp.Diff(want, r.Refrain); diff != "" {
		t.Errorf("refrain mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"v1", "c1", "v2", "c3"}, r.Order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

// The orphan policy is an open choice: a line after a blank line, with no
// marker, belongs to nothing. Each policy is checked on the same input.
func TestParseOrphanPolicy(t *testing.T) {
	input := "Song Number: 1\nEN Title: T\n1. first\n\norphan line\n2. second\n"
	var cases = []struct {
		policy OrphanPolicy
		verses []song.Verse
		issues int
	}{
		{OrphanDiscard, []song.Verse{{"first"}, {"second"}}, 1},
		{OrphanAttachPrevious, []song.Verse{{"first", "orphan line"}, {"second"}}, 0},
		{OrphanNewVerse, []song.Verse{{"first"}, {"orphan line"}, {"second"}}, 0},
	}
	for _, c := range cases {
		t.Run(c.policy.String(), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Orphans = c.policy
			result := ParseString(input, opts)
			r := result.Songs.Records()[0]
			if diff := cmp.Diff(c.verses, r.Verses); diff != "" {
				t.Errorf("verses mismatch (-want +got):\n%s", diff)
			}
			if n := countKind(result.Issues, report.Orphan); n != c.issues {
				t.Errorf("want %d orphan issues, got %d", c.issues, n)
			}
		})
	}
}

func TestParseBlankDoesNotClose(t *testing.T) {
	input := "Song Number: 1\nEN Title: T\nPallavi : a\n\nb\n"
	opts := DefaultOptions()
	opts.BlankCloses = false
	r := ParseString(input, opts).Songs.Records()[0]
	if diff := cmp.Diff([]string{"a", "b"}, r.Refrain.Pallavi); diff != "" {
		t.Errorf("pallavi mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMergeByOrdinal(t *testing.T) {
	input := "Song Number: 1\nEN Title: T\n2. second\n1. first\n2. again\n"
	opts := DefaultOptions()
	opts.MergeByOrdinal = true
	r := ParseString(input, opts).Songs.Records()[0]
	want := []song.Verse{{"first"}, {"second", "again"}}
	if diff := cmp.Diff(want, r.Verses); diff != "" {
		t.Errorf("verses mismatch (-want +got):\n%s", diff)
	}
	r = ParseString(input, DefaultOptions()).Songs.Records()[0]
	if len(r.Verses) != 3 {
		t.Errorf("want verses in appearance order, got %v", r.Verses)
	}
}

func TestParseTextBeforeFirstSong(t *testing.T) {
	input := "stray\n\nSong Number: 1\nEN Title: T\n1. a\n"
	result := ParseString(input, DefaultOptions())
	if result.Songs.Len() != 1 {
		t.Fatalf("want 1 song, got %d", result.Songs.Len())
	}
	if countKind(result.Issues, report.Orphan) != 1 {
		t.Errorf("want orphan reported, got %v", result.Issues)
	}
}

func TestParseMetadataAndDefaultLang(t *testing.T) {
	input := "Song Number: 0012\nSong Title: தேவா\nTelugu Reference Number: 44\nPallavi : a\n"
	opts := DefaultOptions()
	opts.DefaultLang = song.Tamil
	r := ParseString(input, opts).Songs.Records()[0]
	if r.Title(song.Tamil) != "தேவா" {
		t.Errorf("want tamil title, got %v", r.Titles)
	}
	if r.Get("Telugu Reference Number") != "44" {
		t.Errorf("want metadata carried, got %v", r.Metadata)
	}
	if r.Number.Key() != "12" {
		t.Errorf("want key 12, got %s", r.Number.Key())
	}
}

func TestTrackerChorusIndexOutOfRange(t *testing.T) {
	tr := NewTracker(DefaultOptions())
	tr.Open(Chorus, 1, "one")
	if got := tr.Open(Chorus, 1<<40, "big"); got != 2 {
		t.Errorf("got index %d, want next free chorus 2", got)
	}
	var r song.Record
	tr.Fill(&r)
	want := song.Refrain{Pallavi: []string{"one"}, Anupallavi: []string{"big"}}
	if diff := cmp.Diff(want, r.Refrain); diff != "" {
		t.Errorf("refrain mismatch (-want +got):\n%s", diff)
	}
}
