package bible

import (
	"bytes"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/google/go-cmp/cmp"
	"github.com/zionsongs/songkit/song"
)

const zefania = `<?xml version="1.0" encoding="utf-8"?>
<XMLBIBLE biblename="KJV">
  <BIBLEBOOK bnumber="1" bname="Genesis">
    <CHAPTER cnumber="1">
      <VERS vnumber="1">In the beginning God created the heaven and the earth.</VERS>
      <VERS vnumber="2">And the earth was without form, and void.</VERS>
    </CHAPTER>
  </BIBLEBOOK>
  <BIBLEBOOK bnumber="19" bname="PSALM">
    <CHAPTER cnumber="23">
      <VERS vnumber="1">The LORD is my shepherd; I shall not want.</VERS>
    </CHAPTER>
  </BIBLEBOOK>
</XMLBIBLE>
`

const numbered = `<?xml version="1.0" encoding="utf-8"?>
<bible>
  <testament name="Old">
    <book number="1">
      <chapter number="1">
        <verse number="1">ఆదియందు దేవుడు భూమ్యాకాశములను సృజించెను.</verse>
        <verse number="2">భూమి నిరాకారముగాను శూన్యముగాను ఉండెను.</verse>
        <verse number="3">దేవుడు వెలుగు కమ్మని పలుకగా వెలుగు కలిగెను.</verse>
      </chapter>
    </book>
    <book number="19">
      <chapter number="23">
        <verse number="1">యెహోవా నా కాపరి</verse>
      </chapter>
    </book>
  </testament>
</bible>
`

func mustRead(t *testing.T, s string, lang song.Lang) *Bible {
	t.Helper()
	b, err := Read(strings.NewReader(s), lang)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestNormalizeBook(t *testing.T) {
	var cases = []struct {
		in, want string
	}{
		{"Genesis", "Genesis"},
		{"PSALM", "Psalms"},
		{"song of solomon", "Song of Solomon"},
		{"1  samuel", "1 Samuel"},
	}
	for _, c := range cases {
		if got := NormalizeBook(c.in); got != c.want {
			t.Errorf("NormalizeBook(%q): got %q, want %q", c.in, got, c.want)
		}
	}
	if len(Books) != 66 {
		t.Errorf("got %d books, want 66", len(Books))
	}
	if got := BookName("22"); got != "Song of Solomon" {
		t.Errorf("got %q", got)
	}
	if got := BookName("67"); got != "Book67" {
		t.Errorf("got %q", got)
	}
}

func TestRead(t *testing.T) {
	z := mustRead(t, zefania, song.English)
	var books []string
	for _, b := range z.Books {
		books = append(books, b.Name)
	}
	if diff := cmp.Diff([]string{"Genesis", "Psalms"}, books); diff != "" {
		t.Errorf("books mismatch (-want +got):\n%s", diff)
	}
	if z.Len() != 3 {
		t.Errorf("got %d verses, want 3", z.Len())
	}
	if got := z.Text("Psalms", "23", "1"); !strings.HasPrefix(got, "The LORD") {
		t.Errorf("got %q", got)
	}
	n := mustRead(t, numbered, song.Telugu)
	if n.Books[1].Name != "Psalms" || n.Len() != 4 {
		t.Errorf("unexpected numbered bible: %s, %d verses", n.Books[1].Name, n.Len())
	}
	if _, err := Read(strings.NewReader("<html/>"), song.Tamil); err != ErrUnknownFormat {
		t.Errorf("got %v, want ErrUnknownFormat", err)
	}
	if _, err := Read(strings.NewReader("<bible><testament>"), song.Tamil); err == nil {
		t.Errorf("want error for truncated document")
	}
}

func TestMerge(t *testing.T) {
	var (
		tel = mustRead(t, numbered, song.Telugu)
		eng = mustRead(t, zefania, song.English)
		m   = &Merger{Primary: tel, Bibles: []*Bible{eng, tel}}
	)
	doc, issues := m.Merge()
	if doc.Header.Work != "Merged English-Telugu Bible" || doc.Header.Language != "ENG-TEL" {
		t.Errorf("unexpected header: %+v", doc.Header)
	}
	var messages []string
	for _, issue := range issues {
		messages = append(messages, issue.Message)
	}
	if diff := cmp.Diff([]string{"Missing English verse for Genesis 1:3"}, messages); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
	if len(doc.Text.Books) != 2 {
		t.Fatalf("got %d books, want 2", len(doc.Text.Books))
	}
	v := doc.Text.Books[1].Chapters[0].Verses[0]
	if v.OsisID != "Psalms.23.1" {
		t.Errorf("got %s", v.OsisID)
	}
	want := "{lang-eng}<sup>23:1</sup>The LORD is my shepherd; I shall not want.{/lang-eng} {lang-tel}<sup>23:1</sup>యెహోవా నా కాపరి{/lang-tel}"
	if v.Text != want {
		t.Errorf("got %q, want %q", v.Text, want)
	}
	missing := doc.Text.Books[0].Chapters[0].Verses[2]
	if !strings.HasPrefix(missing.Text, "{lang-eng}<sup>1:3</sup>{/lang-eng} ") {
		t.Errorf("want empty english span, got %q", missing.Text)
	}

	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<sup>") {
		t.Errorf("want verse markup escaped as text")
	}
	parsed, err := xmlquery.Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}
	node := xmlquery.FindOne(parsed, "//*[local-name()='verse'][@osisID='Psalms.23.1']")
	if node == nil || node.InnerText() != want {
		t.Errorf("verse not found or text changed: %v", node)
	}
}
