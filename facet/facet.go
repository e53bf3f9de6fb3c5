// Package facet assigns curated era buckets to resolved time spans.
//
// A facet covers an inclusive range of signed years (BC negative). A span
// belongs to every facet it overlaps; the notations are returned in table
// order, which is chosen by the curators of the table and never sorted.
//
// Facet tables are read once and never modified. All functions are safe for
// concurrent use by multiple goroutines.
package facet

import (
	"errors"
	"fmt"
	"slices"
)

// ErrMalformedRow is returned by Read for rows that cannot be used.
var ErrMalformedRow = errors.New("facet: malformed row")

// Facet is a named era bucket with an inclusive year range.
type Facet struct {
	ID            string `json:"id"`
	Notation      string `json:"notation"`
	Earliest      int64  `json:"earliest"` // first year, BC negative
	Latest        int64  `json:"latest"`   // last year, BC negative
	DescriptionDE string `json:"description_de"`
	DescriptionEN string `json:"description_en"`
	SortKey       string `json:"sort_key"`
}

// String returns a debug representation, e.g. time_60900[1801..1900].
func (f Facet) String() string {
	return fmt.Sprintf("%s[%d..%d]", f.Notation, f.Earliest, f.Latest)
}

// Overlaps reports whether the years start..end share at least one year
// with f.
func (f Facet) Overlaps(start, end int64) bool {
	return start <= f.Latest && end >= f.Earliest
}

// Assign returns the notations of all facets overlapping the years
// start..end, deduplicated and in table order. It returns nil when no facet
// overlaps.
func Assign(facets []Facet, start, end int64) []string {
	var notations []string
	for _, f := range facets {
		if f.Overlaps(start, end) && !slices.Contains(notations, f.Notation) {
			notations = append(notations, f.Notation)
		}
	}
	return notations
}
