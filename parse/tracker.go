package parse

import (
	"sort"

	"github.com/zionsongs/songkit/song"
)

// OrphanPolicy decides what happens to a continuation line when no section
// is open, e.g. after a blank line closed the previous section.
type OrphanPolicy int

const (
	// OrphanDiscard drops the line. The line is reported.
	OrphanDiscard OrphanPolicy = iota
	// OrphanAttachPrevious appends the line to the most recently closed
	// section of the current song.
	OrphanAttachPrevious
	// OrphanNewVerse starts a new verse with the line.
	OrphanNewVerse
)

func (p OrphanPolicy) String() string {
	switch p {
	case OrphanAttachPrevious:
		return "attach"
	case OrphanNewVerse:
		return "verse"
	default:
		return "discard"
	}
}

// ParseOrphanPolicy maps "discard", "attach" and "verse" to a policy.
func ParseOrphanPolicy(s string) (OrphanPolicy, bool) {
	switch s {
	case "discard", "":
		return OrphanDiscard, true
	case "attach":
		return OrphanAttachPrevious, true
	case "verse":
		return OrphanNewVerse, true
	}
	return OrphanDiscard, false
}

// target identifies a committed section bucket.
type target struct {
	section Section
	index   int
}

// Tracker keeps at most one open section buffer for the song being read.
// Closing a section commits non-empty buffers to their bucket and drops
// empty ones. The zero value is not usable, use NewTracker.
type Tracker struct {
	opts Options

	open    bool
	current target
	buf     []string

	last    target
	hasLast bool

	pallavi    []string
	anupallavi []string
	choruses   map[int][]string // index 3 and up
	verses     map[int][]string
	verseOrder []int // appearance order of verse buckets
	nextVerse  int
	nextChorus int
}

// NewTracker returns a tracker for a single song.
func NewTracker(opts Options) *Tracker {
	return &Tracker{
		opts:       opts,
		choruses:   make(map[int][]string),
		verses:     make(map[int][]string),
		nextVerse:  1,
		nextChorus: 1,
	}
}

// IsOpen reports whether a section is open.
func (t *Tracker) IsOpen() bool { return t.open }

// Open closes the current section and opens a new one. For verses and
// choruses a zero index means "next free index", the assigned index is
// returned.
func (t *Tracker) Open(section Section, index int, text string) int {
	t.Close()
	switch section {
	case Pallavi:
		index = 1
	case Anupallavi:
		index = 2
	case Chorus:
		if index <= 0 || index > song.MaxChorus {
			index = t.freeChorus()
		}
		// Chorus1 and Chorus2 are the same buckets as pallavi and
		// anupallavi.
		switch index {
		case 1:
			section = Pallavi
		case 2:
			section = Anupallavi
		}
	case Verse:
		if !t.opts.MergeByOrdinal || index == 0 {
			index = t.nextVerse
		}
		if index >= t.nextVerse {
			t.nextVerse = index + 1
		}
	}
	t.open = true
	t.current = target{section: section, index: index}
	t.buf = t.buf[:0]
	if text != "" {
		t.buf = append(t.buf, text)
	}
	return index
}

func (t *Tracker) freeChorus() int {
	for {
		i := t.nextChorus
		t.nextChorus++
		switch {
		case i == 1 && len(t.pallavi) == 0:
			return i
		case i == 2 && len(t.anupallavi) == 0:
			return i
		case i > 2 && len(t.choruses[i]) == 0:
			return i
		}
	}
}

// Append adds a continuation line. It reports false if no section was open
// and the orphan policy did not place the line anywhere.
func (t *Tracker) Append(text string) bool {
	if text == "" {
		return true
	}
	if t.open {
		t.buf = append(t.buf, text)
		return true
	}
	switch t.opts.Orphans {
	case OrphanAttachPrevious:
		if !t.hasLast {
			return false
		}
		t.commit(t.last, []string{text})
		return true
	case OrphanNewVerse:
		t.Open(Verse, 0, text)
		return true
	default:
		return false
	}
}

// Close commits the open section, if any.
func (t *Tracker) Close() {
	if !t.open {
		return
	}
	t.open = false
	if len(t.buf) == 0 {
		return
	}
	lines := make([]string, len(t.buf))
	copy(lines, t.buf)
	t.commit(t.current, lines)
	t.buf = t.buf[:0]
}

func (t *Tracker) commit(tgt target, lines []string) {
	switch tgt.section {
	case Pallavi:
		t.pallavi = append(t.pallavi, lines...)
	case Anupallavi:
		t.anupallavi = append(t.anupallavi, lines...)
	case Chorus:
		t.choruses[tgt.index] = append(t.choruses[tgt.index], lines...)
	case Verse:
		if _, ok := t.verses[tgt.index]; !ok {
			t.verseOrder = append(t.verseOrder, tgt.index)
		}
		t.verses[tgt.index] = append(t.verses[tgt.index], lines...)
	}
	t.last, t.hasLast = tgt, true
}

// HasVerses reports whether any verse was committed or is open.
func (t *Tracker) HasVerses() bool {
	return len(t.verseOrder) > 0 || (t.open && t.current.section == Verse)
}

// Fill closes the open section and writes all buckets into the record.
// Verses are emitted in order of appearance, or sorted by index when merging
// by ordinal; both are renumbered densely.
func (t *Tracker) Fill(r *song.Record) {
	t.Close()
	r.Refrain.Pallavi = t.pallavi
	r.Refrain.Anupallavi = t.anupallavi
	if len(t.choruses) > 0 {
		var keys []int
		for k := range t.choruses {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		extra := make([][]string, keys[len(keys)-1]-2)
		for _, k := range keys {
			extra[k-3] = t.choruses[k]
		}
		r.Refrain.Extra = extra
	}
	order := make([]int, len(t.verseOrder))
	copy(order, t.verseOrder)
	if t.opts.MergeByOrdinal {
		sort.Ints(order)
	}
	for _, k := range order {
		r.Verses = append(r.Verses, song.Verse(t.verses[k]))
	}
}
