package align

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zionsongs/songkit/song"
)

func TestExportReports(t *testing.T) {
	aligner := &Aligner{
		Catalog: mustCatalog(t, "SongNumber,TamilNumber,HindiNumber\n1,7,0\n1,7,0\n"),
		Sources: map[song.Lang]*song.Collection{
			song.English: collection(t, song.English, "Song Number: 1\nEN Title: One\n1. a\n"),
			song.Tamil:   collection(t, song.Tamil, "Song Number: 7\nSong Title: Seven\n1. a\n\nSong Number: 8\nSong Title: Eight\n1. b\n"),
		},
		Unmatched: true,
	}
	result := aligner.Merge()
	var sb strings.Builder
	if err := WriteExportSummary(&sb, result.Songs); err != nil {
		t.Fatal(err)
	}
	want := `MasterID,TeluguNo,EnglishNo,TamilNo,HindiNo,TeluguTitle,EnglishTitle,TamilTitle,HindiTitle
1,1,1,7,0,,One,Seven,
8,,,8,,,,Eight,
`
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
	sb.Reset()
	if err := WriteDuplicates(&sb, result.Duplicates); err != nil {
		t.Fatal(err)
	}
	want = `TeluguNo,EnglishNo,TamilNo,HindiNo,TeluguTitle,EnglishTitle,TamilTitle,HindiTitle,Reason
1,1,7,0,,One,Seven,,Duplicate entry
`
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("duplicates mismatch (-want +got):\n%s", diff)
	}
	stats := result.Stats()
	if stats.Matched != 1 || stats.Duplicates != 1 || stats.Total() != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if diff := cmp.Diff([]string{"8"}, stats.Unmatched[song.Tamil]); diff != "" {
		t.Errorf("unmatched mismatch (-want +got):\n%s", diff)
	}
	if got := result.Songs[1].FileTitle(); got != "Eight" {
		t.Errorf("got file title %q", got)
	}
}
