package bible

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Books are the 66 books of the protestant canon, numbered from one in
// numbered sources.
var Books = []string{
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy",
	"Joshua", "Judges", "Ruth", "1 Samuel", "2 Samuel",
	"1 Kings", "2 Kings", "1 Chronicles", "2 Chronicles", "Ezra",
	"Nehemiah", "Esther", "Job", "Psalms", "Proverbs",
	"Ecclesiastes", "Song of Solomon", "Isaiah", "Jeremiah", "Lamentations",
	"Ezekiel", "Daniel", "Hosea", "Joel", "Amos",
	"Obadiah", "Jonah", "Micah", "Nahum", "Habakkuk",
	"Zephaniah", "Haggai", "Zechariah", "Malachi",
	"Matthew", "Mark", "Luke", "John", "Acts",
	"Romans", "1 Corinthians", "2 Corinthians", "Galatians", "Ephesians",
	"Philippians", "Colossians", "1 Thessalonians", "2 Thessalonians", "1 Timothy",
	"2 Timothy", "Titus", "Philemon", "Hebrews", "James",
	"1 Peter", "2 Peter", "1 John", "2 John", "3 John",
	"Jude", "Revelation",
}

var corrections = map[string]string{
	"Psalm":           "Psalms",
	"Song Of Solomon": "Song of Solomon",
	"Song Of Songs":   "Song of Solomon",
}

var titleCase = cases.Title(language.English)

// BookName returns the name of a numbered book, "Book67" for numbers
// outside the canon.
func BookName(number string) string {
	n, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil || n < 1 || n > len(Books) {
		return "Book" + strings.TrimSpace(number)
	}
	return NormalizeBook(Books[n-1])
}

// NormalizeBook title cases a book name and applies known corrections, so
// that "PSALM" and "Psalms" name the same book.
func NormalizeBook(name string) string {
	n := titleCase.String(strings.Join(strings.Fields(name), " "))
	if c, ok := corrections[n]; ok {
		return c
	}
	return n
}
