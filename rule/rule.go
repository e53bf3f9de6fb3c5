// Package rule selects the rewrite rule whose input mask fits the shape of a
// catalogue date expression.
//
// A mask is compared with the shaped input (see normalize.Shape) rune by
// rune. '#' stands for a digit, spaces must line up with spaces, and a fixed
// set of punctuation and letters must appear verbatim; every other mask
// rune accepts anything. When several rules fit, the ones with the fewest
// '#' are the most specific and win; if more than one distinct rule is left
// the input is ambiguous.
//
// Rule tables are read once and never modified. All functions are safe for
// concurrent use by multiple goroutines.
package rule

import (
	"errors"
	"fmt"

	"github.com/mbuechner/timeparser/normalize"
)

// Sentinel errors.
var (
	ErrAmbiguous    = errors.New("rule: multiple rules match")
	ErrMalformedRow = errors.New("rule: malformed row")
)

// Rule rewrites inputs of one shape into the canonical form. Rules are
// compared structurally.
type Rule struct {
	InputMask     string `json:"input_mask"`
	InputPattern  string `json:"input_pattern"`
	OutputMask    string `json:"output_mask"`
	OutputPattern string `json:"output_pattern"`
}

// String returns a debug representation, e.g. "##.##.####" -> "YYYY-NN-DD".
func (r Rule) String() string {
	return fmt.Sprintf("%q -> %q", r.InputMask, r.OutputPattern)
}

// Transform compiles the rule into a normalize.Transform.
func (r Rule) Transform() (*normalize.Transform, error) {
	t, err := normalize.NewTransform(r.InputMask, r.InputPattern, r.OutputMask, r.OutputPattern)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", r, err)
	}
	return t, nil
}

// Find returns the rule for raw. ok is false when no rule fits, in which
// case raw is expected to be canonical already. ErrAmbiguous is returned
// when more than one distinct rule remains after Select.
func Find(rules []Rule, raw string) (r Rule, ok bool, err error) {
	found := Select(rules, normalize.Shape(raw))
	switch len(found) {
	case 0:
		return Rule{}, false, nil
	case 1:
		return found[0], true, nil
	default:
		return Rule{}, false, fmt.Errorf("%w: %d candidates for %q", ErrAmbiguous, len(found), raw)
	}
}
