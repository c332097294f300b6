package song

import (
	"fmt"
	"strings"
)

// Section names used in verse orders and OpenLyrics verse names.
const (
	PallaviName    = "c1"
	AnupallaviName = "c2"
	// MaxChorus is the highest chorus number accepted from input, larger
	// numbers are treated as unreadable.
	MaxChorus = 99
)

// VerseName returns the name of the i-th verse, starting at 1.
func VerseName(i int) string {
	return fmt.Sprintf("v%d", i)
}

// ChorusName returns the name of the i-th chorus, starting at 1.
func ChorusName(i int) string {
	return fmt.Sprintf("c%d", i)
}

// OrderFor computes the presentation order for a song with the given
// refrain sections and number of verses:
//
//	no refrain:            v1 v2 ... vN
//	pallavi:               c1 v1 c1 v2 c1 ... vN c1
//	pallavi, anupallavi:   c1 c2 v1 c2 v2 c2 ... vN c2 c1
//	anupallavi:            c2 v1 c2 ... vN c2
//
// A song without refrain and verses has an empty order.
func OrderFor(hasPallavi, hasAnupallavi bool, verses int) []string {
	var order []string
	switch {
	case hasPallavi && hasAnupallavi:
		order = append(order, PallaviName, AnupallaviName)
		for i := 1; i <= verses; i++ {
			order = append(order, VerseName(i), AnupallaviName)
		}
		order = append(order, PallaviName)
	case hasPallavi:
		order = append(order, PallaviName)
		for i := 1; i <= verses; i++ {
			order = append(order, VerseName(i), PallaviName)
		}
	case hasAnupallavi:
		order = append(order, AnupallaviName)
		for i := 1; i <= verses; i++ {
			order = append(order, VerseName(i), AnupallaviName)
		}
	default:
		for i := 1; i <= verses; i++ {
			order = append(order, VerseName(i))
		}
	}
	return order
}

// VerseOrder synthesizes the order for a record.
func VerseOrder(r *Record) []string {
	return OrderFor(len(r.Refrain.Pallavi) > 0, len(r.Refrain.Anupallavi) > 0, len(r.Verses))
}

// FormatOrder joins order tokens with a single space.
func FormatOrder(order []string) string {
	return strings.Join(order, " ")
}
