package rule

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// columns is the number of tab-separated fields of a rule row.
const columns = 4

// Read parses a rule table: one header line, then one rule per line with
// the tab-separated columns input mask, input pattern, output mask and
// output pattern. Empty lines are skipped. Masks are not trimmed, since
// leading and trailing spaces are part of a shape.
func Read(r io.Reader) ([]Rule, error) {
	var rules []Rule

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if line == 1 {
			continue
		}
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		cols := strings.Split(text, "\t")
		if len(cols) < columns {
			return nil, fmt.Errorf("%w: line %d: expected %d columns, got %d", ErrMalformedRow, line, columns, len(cols))
		}
		rules = append(rules, Rule{
			InputMask:     cols[0],
			InputPattern:  cols[1],
			OutputMask:    cols[2],
			OutputPattern: cols[3],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("rule: reading table: %w", err)
	}
	return rules, nil
}
