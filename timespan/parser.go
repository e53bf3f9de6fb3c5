package timespan

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/mbuechner/timeparser/datetime"
)

var (
	reRange      = regexp.MustCompile(`^(ab|seit|bis|vor|um|ca\.|nach|vermutlich)`)
	reLimitation = regexp.MustCompile(`^(?:([1-9]|10)\. (Dekade)|([1-3])\. (Drittel)|([1-4])\. (Viertel)|([1-2])\. (Hälfte)|Anfang|Mitte|Ende)`)
	reUnit       = regexp.MustCompile(`^(\d+)\. (Jahrhundert|Jahrtausend)`)
	reYMD        = regexp.MustCompile(`^(-?)(\d+)-(\d{2})-(\d{2})`)
	reYM         = regexp.MustCompile(`^(-?)(\d+)-(\d{2})`)
	reY          = regexp.MustCompile(`^(-?)(\d+)`)
)

// Era suffixes.
const (
	suffixAD = " nach Christus"
	suffixBC = " vor Christus"
)

// maxNumber bounds every number read from the input. Larger numbers cannot
// name an existing year, and the bound keeps year arithmetic from
// overflowing.
const maxNumber = 1_000_000_000

// unitYears maps unit words to their length in years.
var unitYears = map[string]int{
	"Jahrhundert": 100,
	"Jahrtausend": 1000,
}

// Parse interprets s and returns its time span. It fails with ErrNotParsed
// if no expression matches at the start of s, with ErrNotParsedEntirely if
// text is left over, and with ErrInverted if the span ends before it
// starts.
func Parse(s string) (TimeSpan, error) {
	in := input(s)
	span, p, ok := in.expression(Position{})
	if !ok {
		return TimeSpan{}, fmt.Errorf("%w: %q", ErrNotParsed, s)
	}
	if !in.done(p) {
		return TimeSpan{}, fmt.Errorf("%w: %q stops before %q", ErrNotParsedEntirely, s, in.rest(p))
	}
	if datetime.Compare(span.Start, span.End) > 0 {
		return TimeSpan{}, fmt.Errorf("%w: %q gives %s..%s", ErrInverted, s, span.Start, span.End)
	}
	return span, nil
}

func (in input) expression(p Position) (TimeSpan, Position, bool) {
	span, p, ok := in.simple(p)
	if !ok {
		return TimeSpan{}, p, false
	}
	for {
		op, q, ok := in.operator(p)
		if !ok {
			break
		}
		next, q, ok := in.simple(q)
		if !ok {
			break
		}
		span = TimeSpan{Text: span.Text + op.Text + next.Text, Start: span.Start, End: next.End}
		p = q
	}
	return span, p, true
}

func (in input) operator(p Position) (Operator, Position, bool) {
	ops := []struct {
		lit  string
		kind OperatorKind
	}{
		{",", Or},
		{"/", Between},
		{" oder ", Or},
	}
	for _, op := range ops {
		if a, q := in.accept(p, op.lit); a.Accepted {
			return Operator{Text: a.Text, Kind: op.kind}, q, true
		}
	}
	return Operator{}, p, false
}

func (in input) simple(p Position) (TimeSpan, Position, bool) {
	if r, q, ok := in.rangeQualifier(p); ok {
		if sp, q := in.accept(q, " "); sp.Accepted {
			if date, q, ok := in.date(q); ok {
				span := Resolve(date, r.Kind)
				span.Text = r.Text + sp.Text + date.Text
				return span, q, true
			}
		}
	}
	return in.date(p)
}

func (in input) rangeQualifier(p Position) (Range, Position, bool) {
	a, q := in.acceptPattern(p, reRange)
	if !a.Accepted {
		return Range{}, p, false
	}
	return Range{Text: a.Text, Kind: rangeWords[a.Group(1)]}, q, true
}

func (in input) date(p Position) (TimeSpan, Position, bool) {
	span, q, ok := in.unit(p)
	if !ok {
		span, q, ok = in.ymd(p)
	}
	if !ok {
		return TimeSpan{}, p, false
	}
	if a, r := in.accept(q, suffixAD); a.Accepted {
		span.Text += a.Text
		q = r
	}
	if a, r := in.accept(q, suffixBC); a.Accepted {
		span = beforeChrist(span)
		span.Text += a.Text
		q = r
	}
	return span, q, true
}

// beforeChrist moves a span read with AD years into the BC era. BC years
// count backwards, so the end year becomes the start year and vice versa,
// while month and day stay with their original side.
func beforeChrist(s TimeSpan) TimeSpan {
	return TimeSpan{
		Text:  s.Text,
		Start: datetime.Date{Era: datetime.BC, Year: s.End.Year, Month: s.Start.Month, Day: s.Start.Day},
		End:   datetime.Date{Era: datetime.BC, Year: s.Start.Year, Month: s.End.Month, Day: s.End.Day},
	}
}

// unit parses a century or millennium, optionally limited to a fraction.
func (in input) unit(p Position) (TimeSpan, Position, bool) {
	if l, q, ok := in.limitation(p); ok {
		if sp, q := in.accept(q, " "); sp.Accepted {
			if a, q := in.acceptPattern(q, reUnit); a.Accepted {
				if ordinal, ok := number(a.Group(1)); ok {
					first, last := l.Years(ordinal, unitYears[a.Group(2)])
					return yearSpan(l.Text+sp.Text+a.Text, first, last), q, true
				}
			}
		}
	}

	a, q := in.acceptPattern(p, reUnit)
	if !a.Accepted {
		return TimeSpan{}, p, false
	}
	ordinal, ok := number(a.Group(1))
	if !ok {
		return TimeSpan{}, p, false
	}
	size := unitYears[a.Group(2)]
	return yearSpan(a.Text, (ordinal-1)*size+1, ordinal*size), q, true
}

func (in input) limitation(p Position) (Limitation, Position, bool) {
	a, q := in.acceptPattern(p, reLimitation)
	if !a.Accepted {
		return Limitation{}, p, false
	}

	l := Limitation{Text: a.Text}
	switch {
	case a.Group(2) == "Dekade":
		l.Kind, l.N = Decade, atoi(a.Group(1))
	case a.Group(4) == "Drittel":
		l.Kind, l.N = Third, atoi(a.Group(3))
	case a.Group(6) == "Viertel":
		l.Kind, l.N = Quarter, atoi(a.Group(5))
	case a.Group(8) == "Hälfte":
		l.Kind, l.N = Half, atoi(a.Group(7))
	case a.Text == "Anfang":
		l.Kind = Start
	case a.Text == "Mitte":
		l.Kind = Middle
	default:
		l.Kind = End
	}
	return l, q, true
}

// yearSpan spans from January 1st of the astronomical year first to
// December 31st of the astronomical year last.
func yearSpan(text string, first, last int) TimeSpan {
	return TimeSpan{
		Text:  text,
		Start: datetime.FromAstronomical(first, 1, 1),
		End:   datetime.FromAstronomical(last, 12, 31),
	}
}

// ymd parses a year, a year and month, or a full date, tried in that order
// from the most to the least specific.
func (in input) ymd(p Position) (TimeSpan, Position, bool) {
	if a, q := in.acceptPattern(p, reYMD); a.Accepted {
		era, year, ok := signedYear(a.Group(1), a.Group(2))
		if ok {
			d := datetime.Date{Era: era, Year: year, Month: atoi(a.Group(3)), Day: atoi(a.Group(4))}
			return TimeSpan{Text: a.Text, Start: d, End: d}, q, true
		}
	}

	if a, q := in.acceptPattern(p, reYM); a.Accepted {
		era, year, ok := signedYear(a.Group(1), a.Group(2))
		if ok {
			month := atoi(a.Group(3))
			return TimeSpan{
				Text:  a.Text,
				Start: datetime.Date{Era: era, Year: year, Month: month, Day: 1},
				End:   datetime.Date{Era: era, Year: year, Month: month, Day: datetime.DaysInMonth(era, year, month)},
			}, q, true
		}
	}

	if a, q := in.acceptPattern(p, reY); a.Accepted {
		era, year, ok := signedYear(a.Group(1), a.Group(2))
		if ok {
			return TimeSpan{
				Text:  a.Text,
				Start: datetime.Date{Era: era, Year: year, Month: 1, Day: 1},
				End:   datetime.Date{Era: era, Year: year, Month: 12, Day: 31},
			}, q, true
		}
	}

	return TimeSpan{}, p, false
}

// signedYear reads a year with an optional "-" marking BC.
func signedYear(sign, digits string) (datetime.Era, int, bool) {
	year, ok := number(digits)
	if !ok {
		return datetime.AD, 0, false
	}
	if sign == "-" {
		return datetime.BC, year, true
	}
	return datetime.AD, year, true
}

// number parses a run of ASCII digits no larger than maxNumber.
func number(digits string) (int, bool) {
	n, err := strconv.Atoi(digits)
	if err != nil || n > maxNumber {
		return 0, false
	}
	return n, true
}

// atoi parses digits already checked by a pattern.
func atoi(digits string) int {
	n, _ := strconv.Atoi(digits)
	return n
}
