package normalize

import (
	"fmt"
	"strings"
)

// Canonical era suffix words understood by the time span grammar.
const (
	eraWordBC = "vor Christus"
	eraWordAD = "nach Christus"
)

// Value is a token together with the text extracted for it from the input.
type Value struct {
	Token
	Value string
}

// Extract walks tokens over the substituted form of input and records the
// slice each token covers. Year, month and day slices must be ASCII digits,
// weekday slices must be WeekdayCode, and the tokens must cover the input
// exactly.
func Extract(tokens []Token, input string) ([]Value, error) {
	rs := []rune(Substitute(input))
	values := make([]Value, 0, len(tokens))

	pos := 0
	for _, tok := range tokens {
		if pos+tok.Width > len(rs) {
			return nil, fmt.Errorf("%w: %q ends inside %s", ErrExtract, input, tok)
		}
		slice := string(rs[pos : pos+tok.Width])
		if err := checkSlice(tok.Kind, slice); err != nil {
			return nil, fmt.Errorf("%w: %s in %q: %w", ErrExtract, tok, input, err)
		}
		values = append(values, Value{Token: tok, Value: slice})
		pos += tok.Width
	}
	if pos != len(rs) {
		return nil, fmt.Errorf("%w: %q has %d unmatched trailing runes", ErrExtract, input, len(rs)-pos)
	}
	return values, nil
}

func checkSlice(kind Kind, s string) error {
	switch kind {
	case Year, Month, Day:
		if !isDigits(s) {
			return fmt.Errorf("%q is not a number", s)
		}
	case Weekday:
		if s != WeekdayCode {
			return fmt.Errorf("%q is not a weekday", s)
		}
	case EraMarker:
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("empty era marker")
		}
	}
	return nil
}

// Render fills the placeholders of an output pattern with extracted values.
// The n-th placeholder of a kind takes the n-th value of that kind. Numbers
// are zero-padded to the placeholder width, era markers become the
// canonical "vor Christus" or "nach Christus".
func Render(tokens []Token, values []Value) (string, error) {
	byKind := make(map[Kind][]string)
	for _, v := range values {
		if v.Kind != Literal {
			byKind[v.Kind] = append(byKind[v.Kind], v.Value)
		}
	}

	used := make(map[Kind]int)
	var b strings.Builder
	for _, tok := range tokens {
		if tok.Kind == Literal {
			b.WriteString(tok.Text)
			continue
		}
		i := used[tok.Kind]
		if i >= len(byKind[tok.Kind]) {
			return "", fmt.Errorf("%w: no value for %s #%d", ErrRender, tok.Kind, i+1)
		}
		used[tok.Kind]++

		v := byKind[tok.Kind][i]
		switch tok.Kind {
		case Year, Month, Day:
			b.WriteString(padDigits(v, tok.Width))
		case EraMarker:
			b.WriteString(eraWord(v))
		default:
			b.WriteString(v)
		}
	}
	return b.String(), nil
}

func padDigits(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// eraWord maps a catalogue era marker ("v. Chr.", "v.u.Z.", "BC", "n. Chr.")
// to the grammar's suffix word.
func eraWord(marker string) string {
	m := strings.ToLower(strings.TrimSpace(marker))
	if strings.HasPrefix(m, "v") || strings.HasPrefix(m, "bc") || strings.HasPrefix(m, "a.c") {
		return eraWordBC
	}
	return eraWordAD
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
