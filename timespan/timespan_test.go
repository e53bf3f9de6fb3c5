package timespan

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mbuechner/timeparser/datetime"
)

func ad(y, m, d int) datetime.Date { return datetime.Date{Era: datetime.AD, Year: y, Month: m, Day: d} }
func bc(y, m, d int) datetime.Date { return datetime.Date{Era: datetime.BC, Year: y, Month: m, Day: d} }

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in         string
		start, end datetime.Date
	}{
		// dates
		{"1985-07-15", ad(1985, 7, 15), ad(1985, 7, 15)},
		{"1920-02", ad(1920, 2, 1), ad(1920, 2, 29)},
		{"1900-02", ad(1900, 2, 1), ad(1900, 2, 28)},
		{"1920", ad(1920, 1, 1), ad(1920, 12, 31)},
		{"-20000-02-21", bc(20000, 2, 21), bc(20000, 2, 21)},
		{"-27", bc(27, 1, 1), bc(27, 12, 31)},

		// eras
		{"500 nach Christus", ad(500, 1, 1), ad(500, 12, 31)},
		{"500 vor Christus", bc(500, 1, 1), bc(500, 12, 31)},
		{"5. Jahrhundert vor Christus", bc(500, 1, 1), bc(401, 12, 31)},
		{"1. Jahrhundert vor Christus", bc(100, 1, 1), bc(1, 12, 31)},

		// centuries and millennia
		{"19. Jahrhundert", ad(1801, 1, 1), ad(1900, 12, 31)},
		{"2. Hälfte 19. Jahrhundert", ad(1851, 1, 1), ad(1900, 12, 31)},
		{"1. Hälfte 19. Jahrhundert", ad(1801, 1, 1), ad(1850, 12, 31)},
		{"3. Dekade 20. Jahrhundert", ad(1921, 1, 1), ad(1930, 12, 31)},
		{"10. Dekade 19. Jahrhundert", ad(1891, 1, 1), ad(1900, 12, 31)},
		{"4. Viertel 18. Jahrhundert", ad(1776, 1, 1), ad(1800, 12, 31)},
		{"1. Drittel 17. Jahrhundert", ad(1601, 1, 1), ad(1633, 12, 31)},
		{"3. Drittel 17. Jahrhundert", ad(1667, 1, 1), ad(1699, 12, 31)},
		{"Anfang 20. Jahrhundert", ad(1901, 1, 1), ad(1915, 12, 31)},
		{"Mitte 20. Jahrhundert", ad(1945, 1, 1), ad(1955, 12, 31)},
		{"Ende 20. Jahrhundert", ad(1985, 1, 1), ad(2000, 12, 31)},
		{"2. Jahrtausend", ad(1001, 1, 1), ad(2000, 12, 31)},
		{"Anfang 2. Jahrtausend", ad(1001, 1, 1), ad(1150, 12, 31)},
		{"1. Hälfte 1. Jahrtausend", ad(1, 1, 1), ad(500, 12, 31)},

		// ranges
		{"ab 500", ad(500, 1, 1), ad(600, 12, 31)},
		{"seit 1946", ad(1946, 1, 1), ad(1947, 12, 31)},
		{"bis 1850", ad(1840, 1, 1), ad(1850, 12, 31)},
		{"vor 1920", ad(1917, 1, 1), ad(1919, 12, 31)},
		{"vor 1920-03-01", ad(1917, 3, 1), ad(1920, 2, 29)},
		{"um 1920", ad(1919, 1, 1), ad(1921, 12, 31)},
		{"ca. 1750", ad(1748, 1, 1), ad(1752, 12, 31)},
		{"nach 1800", ad(1800, 1, 1), ad(1825, 12, 31)},
		{"vermutlich 1920", ad(1920, 1, 1), ad(1920, 12, 31)},
		{"um 500 vor Christus", bc(510, 1, 1), bc(490, 12, 31)},
		{"ab 500 vor Christus", bc(500, 1, 1), bc(400, 12, 31)},
		{"um 19. Jahrhundert", ad(1799, 1, 1), ad(1902, 12, 31)},

		// operators
		{"1920/1930", ad(1920, 1, 1), ad(1930, 12, 31)},
		{"1920,1921 oder 1925", ad(1920, 1, 1), ad(1925, 12, 31)},
		{"-27/476", bc(27, 1, 1), ad(476, 12, 31)},
		{"1920-02-01/1921-04-03", ad(1920, 2, 1), ad(1921, 4, 3)},
		{"um 1920/1930", ad(1919, 1, 1), ad(1930, 12, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			want := TimeSpan{Text: tt.in, Start: tt.start, End: tt.end}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want error
	}{
		{"", ErrNotParsed},
		{"gestern", ErrNotParsed},
		{"ab", ErrNotParsed},
		{"1920 bis", ErrNotParsedEntirely},
		{"1920,", ErrNotParsedEntirely},
		{"11. Dekade 19. Jahrhundert", ErrNotParsedEntirely},
		{"1920 n. Chr.", ErrNotParsedEntirely},
		{"99999999999999999999", ErrNotParsed},
		{"1930/1920", ErrInverted},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}

func TestParseKeepsInvalidDates(t *testing.T) {
	t.Parallel()

	// Leap day shifted into a common year: parsing succeeds, validation fails.
	got, err := Parse("ab 1904-02-29")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(ad(1905, 2, 29), got.End); diff != "" {
		t.Errorf("End mismatch (-want +got):\n%s", diff)
	}
	if err := got.End.Validate(); !errors.Is(err, datetime.ErrInvalidDate) {
		t.Errorf("Validate(%s) = %v, want ErrInvalidDate", got.End, err)
	}
}

func TestUncertaintyDelta(t *testing.T) {
	t.Parallel()

	tests := []struct{ year, want int }{
		{1, 100}, {999, 100},
		{1000, 50}, {1499, 50},
		{1500, 25}, {1799, 25},
		{1800, 10}, {1899, 10},
		{1900, 3}, {1945, 3},
		{1946, 1}, {2024, 1},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := UncertaintyDelta(tt.year); got != tt.want {
			t.Errorf("UncertaintyDelta(%d) = %d, want %d", tt.year, got, tt.want)
		}
	}
}

func TestAroundDelta(t *testing.T) {
	t.Parallel()

	tests := []struct{ year, want int }{
		{2000, 1}, {1900, 1},
		{1899, 2}, {1700, 2},
		{1699, 5}, {1000, 5},
		{999, 10}, {1, 10},
	}
	for _, tt := range tests {
		if got := AroundDelta(tt.year); got != tt.want {
			t.Errorf("AroundDelta(%d) = %d, want %d", tt.year, got, tt.want)
		}
	}
}

func TestResolvePresumablyIsIdentity(t *testing.T) {
	t.Parallel()

	s := TimeSpan{Text: "x", Start: ad(1920, 1, 1), End: ad(1920, 12, 31)}
	if diff := cmp.Diff(s, Resolve(s, Presumably)); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestLimitationYears(t *testing.T) {
	t.Parallel()

	tests := []struct {
		l           Limitation
		ordinal     int
		unit        int
		first, last int
	}{
		{Limitation{Kind: Decade, N: 1}, 19, 100, 1801, 1810},
		{Limitation{Kind: Quarter, N: 2}, 19, 100, 1826, 1850},
		{Limitation{Kind: Third, N: 2}, 19, 100, 1834, 1866},
		{Limitation{Kind: Half, N: 2}, 19, 100, 1851, 1900},
		{Limitation{Kind: Start}, 19, 100, 1801, 1815},
		{Limitation{Kind: Middle}, 19, 100, 1845, 1855},
		{Limitation{Kind: End}, 19, 100, 1885, 1900},
		{Limitation{Kind: Half, N: 1}, 2, 1000, 1001, 1500},
		{Limitation{Kind: End}, 2, 1000, 1850, 2000},
		{Limitation{Kind: LimitationKind(99)}, 19, 100, 1801, 1900},
	}
	for _, tt := range tests {
		first, last := tt.l.Years(tt.ordinal, tt.unit)
		if first != tt.first || last != tt.last {
			t.Errorf("%s.Years(%d, %d) = %d..%d, want %d..%d",
				tt.l.Kind, tt.ordinal, tt.unit, first, last, tt.first, tt.last)
		}
	}
}

func TestPositionIsImmutable(t *testing.T) {
	t.Parallel()

	in := input("um 1920")
	start := Position{}

	a, next := in.accept(start, "um")
	if !a.Accepted || a.Text != "um" || next.Offset() != 2 {
		t.Fatalf("accept(um) = %+v, %d", a, next.Offset())
	}
	if start.Offset() != 0 {
		t.Errorf("start moved to %d", start.Offset())
	}

	miss, same := in.accept(next, "ab")
	if miss.Accepted || same != next {
		t.Errorf("failed accept moved the position: %+v, %d", miss, same.Offset())
	}

	r, after := in.acceptPattern(next.advance(1), reY)
	if !r.Accepted || r.Group(2) != "1920" || !in.done(after) {
		t.Errorf("acceptPattern = %+v, done=%v", r, in.done(after))
	}
	if r.Group(9) != "" {
		t.Errorf("Group(9) = %q, want empty", r.Group(9))
	}
}

func TestKindStrings(t *testing.T) {
	t.Parallel()

	if Around.String() != "Around" || RangeKind(42).String() != "RangeKind(42)" {
		t.Error("RangeKind.String")
	}
	if Between.String() != "Between" || OperatorKind(7).String() != "OperatorKind(7)" {
		t.Error("OperatorKind.String")
	}
	if Half.String() != "Half" || LimitationKind(-1).String() != "LimitationKind(-1)" {
		t.Error("LimitationKind.String")
	}
	s := TimeSpan{Text: "um 1920", Start: ad(1919, 1, 1), End: ad(1921, 12, 31)}
	if got := s.String(); got != `"um 1920"[1919-01-01..1921-12-31]` {
		t.Errorf("String() = %s", got)
	}
}
