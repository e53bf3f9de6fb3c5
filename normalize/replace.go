package normalize

import (
	"strings"

	"github.com/mbuechner/timeparser/internal/textfold"
)

// Codes that stand in for spelled-out names in shaped input.
const (
	MonthCode   = "MM" // any month name, as seen by rule masks
	WeekdayCode = "GG" // any weekday name
)

// Replacement substitutes a literal name by a fixed-width code.
type Replacement struct {
	From string
	To   string
}

// MonthReplacements maps German month names and their catalogue
// abbreviations to two-digit month numbers. Order matters: longer names
// come before their prefixes.
var MonthReplacements = []Replacement{
	{"Januar", "01"},
	{"Februar", "02"},
	{"März", "03"},
	{"April", "04"},
	{"Mai", "05"},
	{"Juni", "06"},
	{"Juli", "07"},
	{"August", "08"},
	{"September", "09"},
	{"Oktober", "10"},
	{"November", "11"},
	{"Dezember", "12"},
	{"Jan.", "01"},
	{"Feb.", "02"},
	{"Apr.", "04"},
	{"Jun.", "06"},
	{"Jul.", "07"},
	{"Aug.", "08"},
	{"Sept.", "09"},
	{"Okt.", "10"},
	{"Nov.", "11"},
	{"Dez.", "12"},
	{"Nov", "11"},
}

// WeekdayReplacements maps German weekday names to WeekdayCode. Weekdays
// carry no date information; the code only keeps the shape fixed-width.
var WeekdayReplacements = []Replacement{
	{"Montag", WeekdayCode},
	{"Dienstag", WeekdayCode},
	{"Mittwoch", WeekdayCode},
	{"Donnerstag", WeekdayCode},
	{"Freitag", WeekdayCode},
	{"Samstag", WeekdayCode},
	{"Sonntag", WeekdayCode},
}

// Shape returns s in the form rule masks are matched against: NFC-composed,
// month names replaced by MonthCode and weekday names by WeekdayCode.
func Shape(s string) string {
	s = textfold.ComposeNFC(s)
	for _, r := range MonthReplacements {
		s = strings.ReplaceAll(s, r.From, MonthCode)
	}
	return replaceAll(s, WeekdayReplacements)
}

// Substitute returns s in the form values are extracted from: NFC-composed,
// month names replaced by their number and weekday names by WeekdayCode.
// For names separated by spaces or punctuation, Shape(s) and Substitute(s)
// have the same rune length; run-together names may overlap differently, in
// which case extraction fails.
func Substitute(s string) string {
	s = textfold.ComposeNFC(s)
	s = replaceAll(s, MonthReplacements)
	return replaceAll(s, WeekdayReplacements)
}

func replaceAll(s string, table []Replacement) string {
	for _, r := range table {
		s = strings.ReplaceAll(s, r.From, r.To)
	}
	return s
}
