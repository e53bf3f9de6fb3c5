package datetime

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDayIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Date
		want int64
	}{
		{"epoch", Date{AD, 1, 1, 1}, 0},
		{"unix epoch", Date{AD, 1970, 1, 1}, 719164},
		{"last julian day", Date{AD, 1582, 10, 4}, 577736},
		{"first gregorian day", Date{AD, 1582, 10, 15}, 577737},
		{"day before epoch", Date{BC, 1, 12, 31}, -1},
		{"deep past", Date{BC, 20000, 2, 21}, -7304949},
		{"modern", Date{AD, 1985, 7, 15}, 724838},
		{"gregorian leap day", Date{AD, 2000, 2, 29}, 730180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.in.DayIndex()
			if err != nil {
				t.Fatalf("DayIndex(%s): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("DayIndex(%s) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Date
	}{
		{"year zero", Date{AD, 0, 1, 1}},
		{"month 13", Date{AD, 1900, 13, 1}},
		{"month 0", Date{AD, 1900, 0, 1}},
		{"day 0", Date{AD, 1900, 1, 0}},
		{"april 31", Date{AD, 1900, 4, 31}},
		{"gregorian century not leap", Date{AD, 1900, 2, 29}},
		{"reform gap", Date{AD, 1582, 10, 10}},
		{"bc common year", Date{BC, 2, 2, 29}},
		{"year overflow", Date{AD, maxYear + 1, 1, 1}},
		{"unknown era", Date{Era(7), 1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.in.Validate()
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("Validate(%+v) = %v, want ErrInvalidDate", tt.in, err)
			}
			if _, err := tt.in.DayIndex(); err == nil {
				t.Errorf("DayIndex(%+v) succeeded on an invalid date", tt.in)
			}
		})
	}
}

func TestLeapYears(t *testing.T) {
	t.Parallel()

	tests := []struct {
		era  Era
		year int
		want bool
	}{
		{AD, 1500, true}, // julian rule
		{AD, 1600, true},
		{AD, 1700, false},
		{AD, 2000, true},
		{AD, 1582, false},
		{BC, 1, true}, // astronomical year 0
		{BC, 5, true},
		{BC, 4, false},
	}

	for _, tt := range tests {
		if got := IsLeap(tt.era, tt.year); got != tt.want {
			t.Errorf("IsLeap(%s, %d) = %v, want %v", tt.era, tt.year, got, tt.want)
		}
	}
}

func TestPrevDay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Date
		want Date
	}{
		{Date{AD, 1920, 3, 15}, Date{AD, 1920, 3, 14}},
		{Date{AD, 1920, 3, 1}, Date{AD, 1920, 2, 29}},
		{Date{AD, 1920, 1, 1}, Date{AD, 1919, 12, 31}},
		{Date{AD, 1, 1, 1}, Date{BC, 1, 12, 31}},
		{Date{BC, 10, 1, 1}, Date{BC, 11, 12, 31}},
		{Date{AD, 1582, 10, 15}, Date{AD, 1582, 10, 4}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, tt.in.PrevDay()); diff != "" {
			t.Errorf("PrevDay(%s) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestAddYearsCrossesEra(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Date
		n    int
		want Date
	}{
		{Date{AD, 500, 1, 1}, 100, Date{AD, 600, 1, 1}},
		{Date{AD, 50, 1, 1}, -100, Date{BC, 51, 1, 1}},
		{Date{BC, 500, 1, 1}, -10, Date{BC, 510, 1, 1}},
		{Date{BC, 1, 6, 1}, 1, Date{AD, 1, 6, 1}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, tt.in.AddYears(tt.n)); diff != "" {
			t.Errorf("AddYears(%s, %d) mismatch (-want +got):\n%s", tt.in, tt.n, diff)
		}
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	bc := Date{BC, 100, 12, 31}
	ad := Date{AD, 1, 1, 1}
	if Compare(bc, ad) != -1 || Compare(ad, bc) != 1 || Compare(ad, ad) != 0 {
		t.Errorf("Compare ordering broken for %s and %s", bc, ad)
	}
	if Compare(Date{BC, 500, 1, 1}, Date{BC, 401, 12, 31}) != -1 {
		t.Error("500 BC must come before 401 BC")
	}
}

func TestSignedAndString(t *testing.T) {
	t.Parallel()

	d := Date{BC, 20000, 2, 21}
	if d.Signed() != -20000 {
		t.Errorf("Signed() = %d, want -20000", d.Signed())
	}
	if d.String() != "20000-02-21 BC" {
		t.Errorf("String() = %q", d.String())
	}
	if got := (Date{AD, 850, 1, 1}).String(); got != "0850-01-01" {
		t.Errorf("String() = %q, want 0850-01-01", got)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	if _, err := New(AD, 1900, 2, 29); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("New(1900-02-29) = %v, want ErrInvalidDate", err)
	}
	d, err := New(BC, 44, 3, 15)
	if err != nil {
		t.Fatalf("New(44 BC): %v", err)
	}
	if d.Astronomical() != -43 {
		t.Errorf("Astronomical() = %d, want -43", d.Astronomical())
	}
}

func TestEraJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Date{BC, 44, 3, 15})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"era":"BC","year":44,"month":3,"day":15}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var d Date
	if err := json.Unmarshal(data, &d); err != nil {
		t.Fatal(err)
	}
	if d.Era != BC {
		t.Errorf("Unmarshal era = %s, want BC", d.Era)
	}

	var e Era
	if err := json.Unmarshal([]byte(`"CE"`), &e); err == nil {
		t.Error("expected error for unknown era name")
	}
	if got := Era(9).String(); got != "Era(9)" {
		t.Errorf("String() = %q", got)
	}
}
