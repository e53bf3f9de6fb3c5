package facet

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// columns is the number of tab-separated fields of a facet row: id,
// notation, earliest year, latest year, German label, English label and
// sort key.
const columns = 7

// Read parses a facet table. The first line is a header and is skipped;
// rows are trimmed and empty rows ignored. A row with fewer than seven
// columns is always an error. A row whose years are not integers is
// dropped, unless strict is set, in which case it fails the whole table.
func Read(r io.Reader, strict bool) ([]Facet, error) {
	var facets []Facet

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if line == 1 {
			continue
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		cols := strings.Split(text, "\t")
		if len(cols) < columns {
			return nil, fmt.Errorf("%w: line %d: expected %d columns, got %d", ErrMalformedRow, line, columns, len(cols))
		}

		f, err := parseRow(cols)
		if err != nil {
			if strict {
				return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRow, line, err)
			}
			continue
		}
		facets = append(facets, f)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("facet: reading table: %w", err)
	}
	return facets, nil
}

func parseRow(cols []string) (Facet, error) {
	earliest, err := strconv.ParseInt(strings.TrimSpace(cols[2]), 10, 64)
	if err != nil {
		return Facet{}, fmt.Errorf("earliest year: %w", err)
	}
	latest, err := strconv.ParseInt(strings.TrimSpace(cols[3]), 10, 64)
	if err != nil {
		return Facet{}, fmt.Errorf("latest year: %w", err)
	}
	return Facet{
		ID:            cols[0],
		Notation:      cols[1],
		Earliest:      earliest,
		Latest:        latest,
		DescriptionDE: cols[4],
		DescriptionEN: cols[5],
		SortKey:       cols[6],
	}, nil
}
