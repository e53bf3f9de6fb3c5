// Package datetime provides the era-aware calendar date used to encode
// historical time spans.
//
// A Date carries an era (AD or BC) and an era-relative year, so there is no
// year zero: the year before 1 AD is 1 BC. Arithmetic that crosses the era
// boundary runs on astronomical years (1 BC = 0, 2 BC = -1) and converts back.
//
// Day indices follow the historical calendar: Julian up to 1582-10-04,
// Gregorian from 1582-10-15. Day 0 is 0001-01-01 AD. Validation is strict:
// an impossible date is reported, never rolled over into a neighbouring one.
//
// All functions are safe for concurrent use by multiple goroutines.
package datetime

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidDate is returned for dates whose fields do not exist in the calendar.
var ErrInvalidDate = errors.New("datetime: invalid date")

// Era distinguishes years counted before and after the birth of Christ.
type Era int

const (
	AD Era = iota // anno Domini, positive years
	BC            // before Christ, years counted backwards
)

// eraNames maps Era values to their string names.
var eraNames = [...]string{
	AD: "AD",
	BC: "BC",
}

// eraFromName maps string names back to Era values.
var eraFromName = map[string]Era{
	"AD": AD,
	"BC": BC,
}

// String returns the name of the era.
func (e Era) String() string {
	if int(e) >= 0 && int(e) < len(eraNames) {
		return eraNames[e]
	}
	return fmt.Sprintf("Era(%d)", int(e))
}

// MarshalJSON encodes the era as a JSON string (e.g. "BC").
func (e Era) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

// UnmarshalJSON decodes a JSON string (e.g. "BC") into an Era.
func (e *Era) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, ok := eraFromName[s]
	if !ok {
		const maxErrLen = 50
		if len(s) > maxErrLen {
			s = s[:maxErrLen] + "..."
		}
		return fmt.Errorf("datetime: unknown era: %q", s)
	}
	*e = v
	return nil
}

// Date is a calendar day with an era. Year is always the era-relative year
// number (>= 1 for valid dates); Month and Day are 1-based.
type Date struct {
	Era   Era `json:"era"`
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// New returns the AD or BC date for year, month, day after strict validation.
func New(era Era, year, month, day int) (Date, error) {
	d := Date{Era: era, Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// FromAstronomical builds a date from an astronomical year, where 0 is 1 BC
// and -1 is 2 BC. The result is not validated.
func FromAstronomical(year, month, day int) Date {
	if year <= 0 {
		return Date{Era: BC, Year: 1 - year, Month: month, Day: day}
	}
	return Date{Era: AD, Year: year, Month: month, Day: day}
}

// Astronomical returns the astronomical year of d (1 BC = 0).
func (d Date) Astronomical() int {
	if d.Era == BC {
		return 1 - d.Year
	}
	return d.Year
}

// Signed returns the year with BC years negated (1 BC = -1). This is the
// value compared against facet year bounds.
func (d Date) Signed() int {
	if d.Era == BC {
		return -d.Year
	}
	return d.Year
}

// AddYears shifts d by n years along the timeline, keeping month and day.
// The result is not validated: Feb 29 may land in a common year.
func (d Date) AddYears(n int) Date {
	return FromAstronomical(d.Astronomical()+n, d.Month, d.Day)
}

// PrevDay returns the day before d. The days dropped by the 1582 calendar
// reform are skipped. d is expected to be valid.
func (d Date) PrevDay() Date {
	y, m, day := d.Astronomical(), d.Month, d.Day
	if y == reformYear && m == reformMonth && day == reformFirstGregorianDay {
		return FromAstronomical(y, m, reformLastJulianDay)
	}
	if day > 1 {
		return FromAstronomical(y, m, day-1)
	}
	m--
	if m < 1 {
		m = 12
		y--
	}
	return FromAstronomical(y, m, daysInMonth(y, m))
}

// Compare returns -1 if a is before b, 0 if they are the same day and +1 if
// a is after b.
func Compare(a, b Date) int {
	ay, by := a.Astronomical(), b.Astronomical()
	switch {
	case ay != by:
		return sign(ay - by)
	case a.Month != b.Month:
		return sign(a.Month - b.Month)
	default:
		return sign(a.Day - b.Day)
	}
}

// String returns the date as YYYY-MM-DD, followed by " BC" for BC dates.
func (d Date) String() string {
	s := fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	if d.Era == BC {
		s += " BC"
	}
	return s
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
