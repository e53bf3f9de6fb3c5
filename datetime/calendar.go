package datetime

import "fmt"

// Calendar reform of 1582: 1582-10-04 (Julian) is followed by 1582-10-15
// (Gregorian).
const (
	reformYear              = 1582
	reformMonth             = 10
	reformLastJulianDay     = 4
	reformFirstGregorianDay = 15
)

// Julian day numbers of the calendar anchors.
const (
	epochJDN = 1721424 // 0001-01-01 (Julian), day index 0
)

// Field bounds accepted by Validate.
const (
	minMonth = 1
	maxMonth = 12
	minDay   = 1
	maxYear  = 292278994
)

// daysPerMonth holds common-year month lengths, index 1..12.
var daysPerMonth = [...]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeap reports whether the given year has a February 29th.
// Years up to 1582 follow the Julian rule, later years the Gregorian rule.
func IsLeap(era Era, year int) bool {
	return isLeap(Date{Era: era, Year: year}.Astronomical())
}

// DaysInMonth returns the number of the last day of month in the given year.
// It returns 0 for months outside 1..12.
func DaysInMonth(era Era, year, month int) int {
	return daysInMonth(Date{Era: era, Year: year}.Astronomical(), month)
}

func isLeap(astroYear int) bool {
	if astroYear > reformYear {
		return astroYear%4 == 0 && (astroYear%100 != 0 || astroYear%400 == 0)
	}
	return floorMod(astroYear, 4) == 0
}

func daysInMonth(astroYear, month int) int {
	if month < minMonth || month > maxMonth {
		return 0
	}
	if month == 2 && isLeap(astroYear) {
		return 29
	}
	return daysPerMonth[month]
}

// Validate reports whether every field of d exists in the calendar.
func (d Date) Validate() error {
	if d.Era != AD && d.Era != BC {
		return fmt.Errorf("%w: era %d", ErrInvalidDate, int(d.Era))
	}
	if d.Year < 1 || d.Year > maxYear {
		return fmt.Errorf("%w: year %d", ErrInvalidDate, d.Year)
	}
	if d.Month < minMonth || d.Month > maxMonth {
		return fmt.Errorf("%w: month %d in %s", ErrInvalidDate, d.Month, d)
	}
	astro := d.Astronomical()
	if d.Day < minDay || d.Day > daysInMonth(astro, d.Month) {
		return fmt.Errorf("%w: day %d in %s", ErrInvalidDate, d.Day, d)
	}
	if astro == reformYear && d.Month == reformMonth &&
		d.Day > reformLastJulianDay && d.Day < reformFirstGregorianDay {
		return fmt.Errorf("%w: %s was skipped by the calendar reform", ErrInvalidDate, d)
	}
	return nil
}

// DayIndex returns the signed number of days between 0001-01-01 AD and d.
// Days before the epoch are negative.
func (d Date) DayIndex() (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	return julianDayNumber(d) - epochJDN, nil
}

// julianDayNumber returns the astronomical Julian day number of a valid date.
func julianDayNumber(d Date) int64 {
	y := int64(d.Astronomical())
	m := int64(d.Month)
	day := int64(d.Day)

	a := (14 - m) / 12
	y2 := y + 4800 - a
	m2 := m + 12*a - 3
	jdn := day + (153*m2+2)/5 + 365*y2 + floorDiv(y2, 4)

	if isGregorian(d) {
		return jdn - floorDiv(y2, 100) + floorDiv(y2, 400) - 32045
	}
	return jdn - 32083
}

func isGregorian(d Date) bool {
	y := d.Astronomical()
	switch {
	case y != reformYear:
		return y > reformYear
	case d.Month != reformMonth:
		return d.Month > reformMonth
	default:
		return d.Day >= reformFirstGregorianDay
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
