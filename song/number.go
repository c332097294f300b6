package song

import (
	"sort"
	"strconv"
	"strings"
)

// Number is a song number. It is either known, with an integer value, or
// unresolved, in which case the raw text and a reason are kept. Unresolved
// numbers sort after all known numbers.
type Number struct {
	raw    string
	value  int
	known  bool
	reason string
}

// Known returns a resolved song number.
func Known(v int) Number {
	return Number{raw: strconv.Itoa(v), value: v, known: true}
}

// Unresolved returns a number that could not be determined, e.g.
// "Unknown3" for the third record of a file without a number.
func Unresolved(raw, reason string) Number {
	return Number{raw: raw, reason: reason}
}

// ParseNumber parses a song number, leading zeros are ignored, so "002" and
// "2" share a key. Empty or non-numeric input yields an unresolved number
// carrying the raw text.
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unresolved("", "empty")
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return Unresolved(s, "not a number")
	}
	return Number{raw: s, value: v, known: true}
}

// IsKnown reports whether the number resolved to an integer.
func (n Number) IsKnown() bool { return n.known }

// Value returns the integer value, zero for unresolved numbers.
func (n Number) Value() int { return n.value }

// Reason is set for unresolved numbers only.
func (n Number) Reason() string { return n.reason }

// IsZero reports whether the number was never set.
func (n Number) IsZero() bool { return !n.known && n.raw == "" && n.reason == "" }

// String returns the number as written in the source.
func (n Number) String() string {
	return n.raw
}

// Key is used for lookups across sources: the integer value for known
// numbers, the raw text otherwise.
func (n Number) Key() string {
	if n.known {
		return strconv.Itoa(n.value)
	}
	return n.raw
}

// Less orders known numbers ascending, then unresolved numbers by raw text.
func (n Number) Less(o Number) bool {
	switch {
	case n.known && o.known:
		return n.value < o.value
	case n.known:
		return true
	case o.known:
		return false
	default:
		return n.raw < o.raw
	}
}

// SortNumbers sorts numbers in place, see Less.
func SortNumbers(ns []Number) {
	sort.SliceStable(ns, func(i, j int) bool { return ns[i].Less(ns[j]) })
}
