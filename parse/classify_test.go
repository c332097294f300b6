package parse

import (
	"fmt"
	"strings"
	"testing"

	"github.com/zionsongs/songkit/song"
)

func TestClassify(t *testing.T) {
	var cases = []struct {
		line    string
		kind    Kind
		text    string
		section Section
		index   int
	}{
		{"", Blank, "", NoSection, 0},
		{"   \t", Blank, "", NoSection, 0},
		{"Song Number: 5", SongBoundary, "5", NoSection, 0},
		{"SongNumber:12", SongBoundary, "12", NoSection, 0},
		{"EN Title: Grace", TitleLine, "Grace", NoSection, 0},
		{"Song Title: కృప", TitleLine, "కృప", NoSection, 0},
		{"SongTitle: Amazing Grace", TitleLine, "Amazing Grace", NoSection, 0},
		{"VerseOrder: c1 v1 c1", OrderLine, "c1 v1 c1", NoSection, 0},
		{"Telugu Reference Number: 12", MetadataLine, "12", NoSection, 0},
		{"Pallavi : Amazing", RefrainMarker, "Amazing", Pallavi, 1},
		{"pallavi: Amazing", RefrainMarker, "Amazing", Pallavi, 1},
		{"పల్లవి : యేసు", RefrainMarker, "యేసు", Pallavi, 1},
		{"Anupallavi : More", RefrainMarker, "More", Anupallavi, 2},
		{"అనుపల్లవి : ఇంకా", RefrainMarker, "ఇంకా", Anupallavi, 2},
		{"Chorus1 : Sing", RefrainMarker, "Sing", Chorus, 1},
		{"Chorus 3: Sing", RefrainMarker, "Sing", Chorus, 3},
		{"Chorus: Sing", RefrainMarker, "Sing", Chorus, 0},
		{"1. How sweet", VerseMarker, "How sweet", Verse, 1},
		{"12.Refrain text", VerseMarker, "Refrain text", Verse, 12},
		{"Verse 2: text", VerseMarker, "text", Verse, 2},
		{"the sound", ContinuationLine, "the sound", NoSection, 0},
		{"  grace  ", ContinuationLine, "grace", NoSection, 0},
		{"Chorus of angels: sing", ContinuationLine, "Chorus of angels: sing", NoSection, 0},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%q", c.line), func(t *testing.T) {
			got := Classify(c.line)
			if got.Kind != c.kind {
				t.Fatalf("want kind %v, but got %v", c.kind, got.Kind)
			}
			if got.Text != c.text {
				t.Errorf("want text %q, but got %q", c.text, got.Text)
			}
			if got.Section != c.section || got.Index != c.index {
				t.Errorf("want %v/%d, but got %v/%d", c.section, c.index, got.Section, got.Index)
			}
		})
	}
}

func TestClassifyDetails(t *testing.T) {
	if l := Classify("TE Title: యేసు"); l.Lang != song.Telugu {
		t.Errorf("want telugu title, got %q", l.Lang)
	}
	if l := Classify("Song Number: 002"); !l.Number.IsKnown() || l.Number.Value() != 2 {
		t.Errorf("want known number 2, got %v", l.Number)
	}
	if l := Classify("Song Number: "); l.Number.IsKnown() {
		t.Errorf("want unresolved number")
	}
	if l := Classify("Verse x: text"); !l.Malformed || l.RawIndex != "x" || l.Index != 0 {
		t.Errorf("want malformed verse marker, got %+v", l)
	}
	if l := Classify("Chorus100 : text"); !l.Malformed || l.RawIndex != "100" || l.Index != 0 {
		t.Errorf("want malformed chorus marker, got %+v", l)
	}
	if l := Classify("Chorus99 : text"); l.Malformed || l.Index != 99 {
		t.Errorf("want chorus 99, got %+v", l)
	}
	if l := Classify("123. text"); l.Malformed || l.Index != 123 {
		t.Errorf("want verse 123, got %+v", l)
	}
	if l := Classify("VerseOrder: c1  v1 c1"); strings.Join(l.Tokens, ",") != "c1,v1,c1" {
		t.Errorf("unexpected tokens: %v", l.Tokens)
	}
}

func TestLoadPatterns(t *testing.T) {
	p, err := LoadPatterns(strings.NewReader(`{"songBoundary": "^#\\s*(\\d*)$"}`))
	if err != nil {
		t.Fatal(err)
	}
	rules, err := p.Compile()
	if err != nil {
		t.Fatal(err)
	}
	if l := rules.Classify("# 7"); l.Kind != SongBoundary || l.Number.Value() != 7 {
		t.Errorf("want boundary 7, got %+v", l)
	}
	if l := rules.Classify("1. still a verse"); l.Kind != VerseMarker {
		t.Errorf("default patterns should be kept, got %v", l.Kind)
	}
	if _, err := (Patterns{Verse: "("}).Compile(); err == nil {
		t.Errorf("expected compile error")
	}
}
