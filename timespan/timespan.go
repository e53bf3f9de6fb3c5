// Package timespan interprets canonical date expressions such as
// "um 1920", "2. Hälfte 19. Jahrhundert" or "-0027/0476" as a time span
// with an inclusive start and end date.
//
// The grammar, in priority order (the first alternative that matches wins):
//
//	Expression := Simple (Operator Simple)*
//	Simple     := Range " " Date | Date
//	Range      := "ab" | "seit" | "bis" | "vor" | "um" | "ca." | "nach" | "vermutlich"
//	Date       := (Unit | YMD) [" nach Christus"] [" vor Christus"]
//	Unit       := [Limitation " "] N ". Jahrhundert" | [Limitation " "] N ". Jahrtausend"
//	Limitation := N ". Dekade" | N ". Drittel" | N ". Viertel" | N ". Hälfte" | "Anfang" | "Mitte" | "Ende"
//	YMD        := ["-"] digits ["-" MM ["-" DD]]
//	Operator   := "," | "/" | " oder "
//
// A chain of operands spans from the start of the first to the end of the
// last. A leading "-" marks a BC year.
//
// Parsing works on an immutable Position: every rule takes a position and
// returns the position after its match, so a failed alternative leaves
// nothing to undo.
//
// Dates are not validated here; a span may hold dates that do not exist
// (e.g. 1905-02-29 after shifting a leap day), which callers reject when
// they convert the span to day indices.
//
// All functions are safe for concurrent use by multiple goroutines.
package timespan

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mbuechner/timeparser/datetime"
)

// Sentinel errors returned by Parse.
var (
	ErrNotParsed         = errors.New("timespan: could not be parsed")
	ErrNotParsedEntirely = errors.New("timespan: could not be parsed entirely")
	ErrInverted          = errors.New("timespan: end before start")
)

// TimeSpan is the result of parsing: the text that was recognized and the
// inclusive start and end dates.
type TimeSpan struct {
	Text  string        `json:"text"`
	Start datetime.Date `json:"start"`
	End   datetime.Date `json:"end"`
}

// String returns a debug representation, e.g. "um 1920"[1919-01-01..1921-12-31].
func (s TimeSpan) String() string {
	return fmt.Sprintf("%q[%s..%s]", s.Text, s.Start, s.End)
}

// RangeKind is the meaning of a range qualifier.
type RangeKind int

const (
	From       RangeKind = iota // ab, seit
	Until                       // bis
	Before                      // vor
	After                       // nach
	Around                      // um, ca.
	Presumably                  // vermutlich
)

var rangeKindNames = [...]string{
	From:       "From",
	Until:      "Until",
	Before:     "Before",
	After:      "After",
	Around:     "Around",
	Presumably: "Presumably",
}

// String returns the name of the range kind.
func (k RangeKind) String() string {
	if int(k) >= 0 && int(k) < len(rangeKindNames) {
		return rangeKindNames[k]
	}
	return fmt.Sprintf("RangeKind(%d)", int(k))
}

// MarshalJSON encodes the range kind as a JSON string (e.g. "Around").
func (k RangeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Range is a parsed range qualifier.
type Range struct {
	Text string    `json:"text"`
	Kind RangeKind `json:"kind"`
}

// rangeWords maps qualifier words to their kind.
var rangeWords = map[string]RangeKind{
	"ab":         From,
	"seit":       From,
	"bis":        Until,
	"vor":        Before,
	"um":         Around,
	"ca.":        Around,
	"nach":       After,
	"vermutlich": Presumably,
}

// OperatorKind is the meaning of an operator joining two expressions. It
// is recorded but does not change how spans combine.
type OperatorKind int

const (
	Or      OperatorKind = iota // "," or " oder "
	Between                     // "/"
)

var operatorKindNames = [...]string{
	Or:      "Or",
	Between: "Between",
}

// String returns the name of the operator kind.
func (k OperatorKind) String() string {
	if int(k) >= 0 && int(k) < len(operatorKindNames) {
		return operatorKindNames[k]
	}
	return fmt.Sprintf("OperatorKind(%d)", int(k))
}

// MarshalJSON encodes the operator kind as a JSON string (e.g. "Or").
func (k OperatorKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Operator is a parsed operator.
type Operator struct {
	Text string       `json:"text"`
	Kind OperatorKind `json:"kind"`
}

// LimitationKind selects a part of a century or millennium.
type LimitationKind int

const (
	Decade  LimitationKind = iota // N. Dekade
	Quarter                       // N. Viertel
	Third                         // N. Drittel
	Half                          // N. Hälfte
	Start                         // Anfang
	Middle                        // Mitte
	End                           // Ende
)

var limitationKindNames = [...]string{
	Decade:  "Decade",
	Quarter: "Quarter",
	Third:   "Third",
	Half:    "Half",
	Start:   "Start",
	Middle:  "Middle",
	End:     "End",
}

// String returns the name of the limitation kind.
func (k LimitationKind) String() string {
	if int(k) >= 0 && int(k) < len(limitationKindNames) {
		return limitationKindNames[k]
	}
	return fmt.Sprintf("LimitationKind(%d)", int(k))
}

// MarshalJSON encodes the limitation kind as a JSON string (e.g. "Half").
func (k LimitationKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Limitation is a parsed century or millennium fraction. N is the ordinal
// for Decade, Quarter, Third and Half, and 0 otherwise.
type Limitation struct {
	Text string         `json:"text"`
	Kind LimitationKind `json:"kind"`
	N    int            `json:"n,omitempty"`
}

// Years returns the first and last year of the limitation applied to the
// ordinal-th unit, where unit is the length of the unit in years (100 for
// a century, 1000 for a millennium). Years are astronomical.
func (l Limitation) Years(ordinal, unit int) (first, last int) {
	base := (ordinal - 1) * unit
	switch l.Kind {
	case Decade:
		return fraction(base, l.N, unit/10)
	case Quarter:
		return fraction(base, l.N, unit/4)
	case Third:
		return fraction(base, l.N, unit/3)
	case Half:
		return fraction(base, l.N, unit/2)
	case Start:
		return base + 1, base + unit*15/100
	case Middle:
		return base + unit*45/100, base + unit*55/100
	case End:
		return base + unit*85/100, base + unit
	}
	return base + 1, base + unit
}

func fraction(base, n, width int) (first, last int) {
	return base + 1 + (n-1)*width, base + n*width
}
