package timespan

// afterYears is how far "nach" extends a span into the future.
const afterYears = 25

// UncertaintyDelta returns how many years a "ab", "seit", "bis" or "vor"
// qualifier widens a span that starts in the given year. Older dates are
// known less precisely and get a wider margin.
func UncertaintyDelta(year int) int {
	switch {
	case year < 0:
		return 0
	case year <= 999:
		return 100
	case year <= 1499:
		return 50
	case year <= 1799:
		return 25
	case year <= 1899:
		return 10
	case year <= 1945:
		return 3
	default:
		return 1
	}
}

// AroundDelta returns how many years "um" or "ca." widens a span on each
// side.
func AroundDelta(year int) int {
	switch {
	case year >= 1900:
		return 1
	case year >= 1700:
		return 2
	case year >= 1000:
		return 5
	default:
		return 10
	}
}

// Resolve applies a range qualifier to an exact span. Deltas are chosen by
// the year number of the start date; shifting happens on the continuous
// year axis, so a BC span widens away from its center just like an AD one.
//
//	From       end + delta
//	Until      start - delta
//	Before     start - delta, end = the day before the original start
//	Around     start - delta', end + delta'
//	After      end + 25
//	Presumably unchanged
//
// The text of the span is kept.
func Resolve(s TimeSpan, kind RangeKind) TimeSpan {
	delta := UncertaintyDelta(s.Start.Year)
	switch kind {
	case From:
		s.End = s.End.AddYears(delta)
	case Until:
		s.Start = s.Start.AddYears(-delta)
	case Before:
		orig := s.Start
		s.Start = orig.AddYears(-delta)
		s.End = orig.PrevDay()
	case Around:
		d := AroundDelta(s.Start.Year)
		s.Start = s.Start.AddYears(-d)
		s.End = s.End.AddYears(d)
	case After:
		s.End = s.End.AddYears(afterYears)
	}
	return s
}
