package align

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zionsongs/songkit/parse"
	"github.com/zionsongs/songkit/report"
	"github.com/zionsongs/songkit/song"
)

const catalogCSV = `SongNumber,v1TeluguNo,v2TeluguNo,TamilNumber,HindiNumber,NepaliNumber
1,101,0,7,0,0
2,,,0,3,
3,0,0,,,
`

func mustCatalog(t *testing.T, s string) *Catalog {
	t.Helper()
	c, err := LoadCatalog(strings.NewReader(s))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func collection(t *testing.T, lang song.Lang, s string) *song.Collection {
	t.Helper()
	opts := parse.DefaultOptions()
	opts.DefaultLang = lang
	return parse.ParseString(s, opts).Songs
}

func TestLoadCatalog(t *testing.T) {
	c := mustCatalog(t, "\ufeffSongNumber, TamilNumber\n005,12\n,4\n")
	if len(c.Entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(c.Entries))
	}
	e, ok := c.Lookup("5")
	if !ok {
		t.Fatalf("lookup by key failed")
	}
	if e.Number(song.Tamil) != "12" || e.Number(song.Hindi) != "" {
		t.Errorf("unexpected mapping: %+v", e)
	}
	if _, err := LoadCatalog(strings.NewReader("Number,Title\n1,a\n")); err != ErrNoSongNumberColumn {
		t.Errorf("want ErrNoSongNumberColumn, got %v", err)
	}
}

func TestAltNumbers(t *testing.T) {
	c := mustCatalog(t, catalogCSV)
	e, _ := c.Lookup("1")
	if diff := cmp.Diff([]string{"1", "101", "7"}, e.AltNumbers()); diff != "" {
		t.Errorf("alt numbers mismatch (-want +got):\n%s", diff)
	}
}

func TestReverse(t *testing.T) {
	c := mustCatalog(t, "SongNumber,TamilNumber\n1,7\n2,7\n3,8\n")
	rev, issues := c.Reverse(song.Tamil)
	if rev["7"] != "1" || rev["8"] != "3" {
		t.Errorf("unexpected reverse map: %v", rev)
	}
	if len(issues) != 1 || issues[0].Kind != report.Duplicate {
		t.Errorf("want one duplicate mapping issue, got %v", issues)
	}
}

func TestMergeMissingCounterparts(t *testing.T) {
	var (
		catalog = mustCatalog(t, catalogCSV)
		aligner = &Aligner{
			Catalog: catalog,
			Sources: map[song.Lang]*song.Collection{
				song.English: collection(t, song.English, "Song Number: 1\nEN Title: One\n1. a\n2. b\n"),
				song.Telugu:  collection(t, song.Telugu, "Song Number: 1\nTE Title: ఒకటి\n1. అ\n"),
				song.Tamil:   collection(t, song.Tamil, "Song Number: 7\nSong Title: ஒன்று\n1. க\n2. ங\n"),
				song.Hindi:   collection(t, song.Hindi, ""),
			},
		}
		result = aligner.Merge()
	)
	if len(result.Songs) != 3 {
		t.Fatalf("want 3 merged songs, got %d", len(result.Songs))
	}
	// Song 1 has no hindi number; song 2 has nothing but a missing hindi 3
	// and no tamil number; song 3 has no numbers at all except its id.
	counts := make(map[string]int)
	for _, issue := range result.Issues {
		if issue.Kind != report.MissingCounterpart {
			continue
		}
		counts[fmt.Sprintf("%s/%s", issue.Song, issue.Source)]++
	}
	want := map[string]int{
		"1/Hindi":   1,
		"1/Telugu":  1, // v2 missing in telugu
		"2/English": 1,
		"2/Telugu":  1,
		"2/Tamil":   1,
		"2/Hindi":   1,
		"3/English": 1,
		"3/Telugu":  1,
		"3/Tamil":   1,
		"3/Hindi":   1,
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("issue counts mismatch (-want +got):\n%s", diff)
	}
	m := result.Songs[1]
	for _, lang := range DefaultLangs {
		if r := m.Song(lang); r.HasLyrics() {
			t.Errorf("want empty placeholder for %s", lang)
		}
	}
	if diff := cmp.Diff(DefaultLangs, m.Missing); diff != "" {
		t.Errorf("missing mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeSections(t *testing.T) {
	aligner := &Aligner{
		Catalog: mustCatalog(t, "SongNumber,TamilNumber\n1,7\n"),
		Langs:   []song.Lang{song.English, song.Tamil},
		Sources: map[song.Lang]*song.Collection{
			song.English: collection(t, song.English, "Song Number: 1\nEN Title: One\nPallavi : p\n1. a\n"),
			song.Tamil:   collection(t, song.Tamil, "Song Number: 7\nSong Title: T\nAnupallavi : ap\n1. x\n2. y\n"),
		},
	}
	result := aligner.Merge()
	m := result.Songs[0]
	if got := song.FormatOrder(m.Order()); got != "c1 c2 v1 c2 v2 c2 c1" {
		t.Errorf("unexpected order: %s", got)
	}
	var names []string
	for _, s := range m.Sections() {
		names = append(names, s.Name)
	}
	if diff := cmp.Diff([]string{"c1", "c2", "v1", "v2"}, names); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
	if n := len(result.Issues); n != 3 {
		t.Errorf("want 3 section issues (en c2, en v2, ta c1), got %d: %v", n, result.Issues)
	}
}

func TestMergeUnmatched(t *testing.T) {
	aligner := &Aligner{
		Catalog: mustCatalog(t, "SongNumber,TamilNumber,HindiNumber\n1,7,0\n"),
		Sources: map[song.Lang]*song.Collection{
			song.Tamil: collection(t, song.Tamil, "Song Number: 7\nSong Title: A\n1. a\n\nSong Number: 8\nSong Title: B\n1. B\n2. b\n"),
			song.Hindi: collection(t, song.Hindi, "Song Number: 3\nSong Title: H\n1. h\n\nSong Number: 4\nTelugu Reference Number: 99\nSong Title: R\n1. r\n"),
		},
		Unmatched: true,
	}
	result := aligner.Merge()
	var ids []string
	for _, m := range result.Songs {
		ids = append(ids, fmt.Sprintf("%s:%v", m.ID, m.Unmatched))
	}
	if diff := cmp.Diff([]string{"1:false", "8:true", "3:true"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	// The title of song 8 repeats as verse 1 and is dropped.
	tamil := result.Songs[1].Song(song.Tamil)
	if len(tamil.Verses) != 1 || tamil.Verses[0][0] != "b" {
		t.Errorf("want title verse dropped, got %v", tamil.Verses)
	}
	var anomalies int
	for _, issue := range result.Issues {
		if issue.Kind == report.Anomaly {
			anomalies++
		}
	}
	if anomalies != 1 {
		t.Errorf("want hindi song with unmapped reference reported, got %v", result.Issues)
	}
}

func TestMergeDuplicateID(t *testing.T) {
	aligner := &Aligner{
		Catalog: mustCatalog(t, "SongNumber\n1\n01\n"),
		Langs:   []song.Lang{song.English},
		Sources: map[song.Lang]*song.Collection{
			song.English: collection(t, song.English, "Song Number: 1\nEN Title: One\n1. a\n"),
		},
	}
	result := aligner.Merge()
	if len(result.Songs) != 1 || len(result.Duplicates) != 1 {
		t.Errorf("want 1 song and 1 duplicate, got %d and %d", len(result.Songs), len(result.Duplicates))
	}
	if len(result.Issues) != 1 || result.Issues[0].Kind != report.Duplicate {
		t.Errorf("want a single duplicate issue, got %v", result.Issues)
	}
}

func TestMergeDuplicateIDMissingOnce(t *testing.T) {
	aligner := &Aligner{
		Catalog: mustCatalog(t, "SongNumber,TamilNumber\n1,7\n1,7\n"),
		Langs:   []song.Lang{song.English, song.Tamil},
		Sources: map[song.Lang]*song.Collection{
			song.English: collection(t, song.English, "Song Number: 1\nEN Title: One\n1. a\n"),
			song.Tamil:   song.NewCollection(),
		},
	}
	result := aligner.Merge()
	if len(result.Songs) != 1 || len(result.Duplicates) != 1 {
		t.Fatalf("want 1 song and 1 duplicate, got %d and %d", len(result.Songs), len(result.Duplicates))
	}
	var missingTamil int
	for _, issue := range result.Issues {
		if issue.Kind == report.MissingCounterpart && issue.Song == "1" && issue.Source == song.Tamil.Name() {
			missingTamil++
		}
	}
	if missingTamil != 1 {
		t.Errorf("want one missing tamil issue for song 1, got %d in %v", missingTamil, result.Issues)
	}
}
