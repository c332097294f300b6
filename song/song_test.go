package song

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOrderFor(t *testing.T) {
	var cases = []struct {
		pallavi    bool
		anupallavi bool
		verses     int
		result     string
	}{
		{false, false, 0, ""},
		{false, false, 3, "v1 v2 v3"},
		{true, false, 2, "c1 v1 c1 v2 c1"},
		{true, false, 0, "c1"},
		{true, true, 1, "c1 c2 v1 c2 c1"},
		{true, true, 2, "c1 c2 v1 c2 v2 c2 c1"},
		{false, true, 2, "c2 v1 c2 v2 c2"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("p=%v a=%v n=%d", c.pallavi, c.anupallavi, c.verses), func(t *testing.T) {
			got := FormatOrder(OrderFor(c.pallavi, c.anupallavi, c.verses))
			if got != c.result {
				t.Errorf("want %q, but got %q", c.result, got)
			}
		})
	}
}

func TestVerseOrderRecord(t *testing.T) {
	r := &Record{
		Refrain: Refrain{Pallavi: []string{"Amazing", "grace"}},
		Verses:  []Verse{{"How sweet"}, {"the sound"}},
	}
	want := []string{"c1", "v1", "c1", "v2", "c1"}
	if diff := cmp.Diff(want, VerseOrder(r)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNumber(t *testing.T) {
	var cases = []struct {
		s     string
		known bool
		value int
		key   string
	}{
		{"12", true, 12, "12"},
		{" 002 ", true, 2, "2"},
		{"", false, 0, ""},
		{"12a", false, 0, "12a"},
		{"TBD", false, 0, "TBD"},
	}
	for _, c := range cases {
		n := ParseNumber(c.s)
		if n.IsKnown() != c.known || n.Value() != c.value || n.Key() != c.key {
			t.Errorf("ParseNumber(%q) = %v/%d/%q, want %v/%d/%q",
				c.s, n.IsKnown(), n.Value(), n.Key(), c.known, c.value, c.key)
		}
	}
	if got := ParseNumber("002").String(); got != "002" {
		t.Errorf("want raw 002, but got %s", got)
	}
}

func TestNumberLess(t *testing.T) {
	numbers := []Number{Known(2), Unresolved("Unknown1", "missing"), Known(10), Unresolved("A", "x"), Known(1)}
	c := NewCollection()
	for _, n := range numbers {
		c.Add(&Record{Number: n})
	}
	var got []string
	for _, r := range c.Sorted() {
		got = append(got, r.Number.String())
	}
	want := []string{"1", "2", "10", "A", "Unknown1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sort mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectionReplace(t *testing.T) {
	c := NewCollection()
	c.Add(&Record{Number: Known(1), Titles: []Title{{English, "a"}}})
	c.Add(&Record{Number: Known(2)})
	if replaced := c.Add(&Record{Number: ParseNumber("01"), Titles: []Title{{English, "b"}}}); !replaced {
		t.Fatalf("expected replace")
	}
	if c.Len() != 2 {
		t.Fatalf("want 2 records, got %d", c.Len())
	}
	if got := c.Records()[0].Title(English); got != "b" {
		t.Errorf("want replacement in place, got %q", got)
	}
}

func TestSetTitle(t *testing.T) {
	r := &Record{}
	r.SetTitle(English, "Grace")
	r.SetTitle(Telugu, "కృప")
	r.SetTitle(English, "Amazing Grace")
	want := []Title{{English, "Amazing Grace"}, {Telugu, "కృప"}}
	if diff := cmp.Diff(want, r.Titles); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
}

func TestLang(t *testing.T) {
	var cases = []struct {
		s    string
		lang Lang
		iso3 string
	}{
		{"TE", Telugu, "tel"},
		{"eng", English, "eng"},
		{"ta", Tamil, "tam"},
		{"hin", Hindi, "hin"},
		{"ne", Nepali, "nep"},
	}
	for _, c := range cases {
		l, err := ParseLang(c.s)
		if err != nil {
			t.Fatal(err)
		}
		if l != c.lang || l.ISO3() != c.iso3 {
			t.Errorf("ParseLang(%q) = %s (%s), want %s (%s)", c.s, l, l.ISO3(), c.lang, c.iso3)
		}
	}
	if Telugu.Name() != "Telugu" {
		t.Errorf("want Telugu, got %s", Telugu.Name())
	}
	if _, err := ParseLang("zzzz"); err == nil {
		t.Errorf("expected error for unknown language")
	}
}
