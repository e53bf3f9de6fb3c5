package rule

import (
	"fmt"
	"strings"
)

// Conflict is a pair of distinct rules that both win for Sample, an input
// built from the mask of A.
type Conflict struct {
	A, B   Rule
	Sample string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s and %s both select %q", c.A, c.B, c.Sample)
}

// Conflicts checks a rule table for inputs Find would reject as ambiguous.
// Each mask is probed with an input that has a '1' for every digit
// placeholder and the mask's own runes elsewhere; each pair is reported
// once, in table order.
func Conflicts(rules []Rule) []Conflict {
	var out []Conflict
	seen := make(map[[2]Rule]bool)
	for _, r := range rules {
		sample := strings.ReplaceAll(r.InputMask, string(digitPlaceholder), "1")
		found := Select(rules, sample)
		if len(found) < 2 {
			continue
		}
		for i := range found {
			for _, b := range found[i+1:] {
				a := found[i]
				if seen[[2]Rule{a, b}] {
					continue
				}
				seen[[2]Rule{a, b}] = true
				out = append(out, Conflict{A: a, B: b, Sample: sample})
			}
		}
	}
	return out
}

// Duplicates returns the input masks that occur in more than one row, in
// order of first occurrence. Identical rows count as duplicates.
func Duplicates(rules []Rule) []string {
	count := make(map[string]int, len(rules))
	var order []string
	for _, r := range rules {
		if count[r.InputMask] == 0 {
			order = append(order, r.InputMask)
		}
		count[r.InputMask]++
	}

	var out []string
	for _, m := range order {
		if count[m] > 1 {
			out = append(out, m)
		}
	}
	return out
}
