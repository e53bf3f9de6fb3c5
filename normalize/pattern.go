package normalize

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind classifies a token of a compiled pattern.
type Kind int

const (
	Literal   Kind = iota // fixed text, copied through
	Year                  // digits of a year (or a century/ordinal number)
	Month                 // two-digit month number
	Day                   // digits of a day of month
	Weekday               // weekday code
	EraMarker             // text naming the era, e.g. "v. Chr."
)

// kindNames maps Kind values to their string names.
var kindNames = [...]string{
	Literal:   "Literal",
	Year:      "Year",
	Month:     "Month",
	Day:       "Day",
	Weekday:   "Weekday",
	EraMarker: "EraMarker",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// placeholderKinds maps pattern letters to the placeholder they stand for.
var placeholderKinds = map[rune]Kind{
	'Y': Year,
	'N': Month,
	'D': Day,
	'W': Weekday,
	'E': EraMarker,
}

// Token is one element of a compiled pattern. Literal tokens carry their
// Text; placeholders carry the Width (in runes) they occupy in the mask.
type Token struct {
	Kind  Kind
	Text  string
	Width int
}

// String returns a debug representation, e.g. Year[4] or Literal("-").
func (t Token) String() string {
	if t.Kind == Literal {
		return fmt.Sprintf("Literal(%q)", t.Text)
	}
	return fmt.Sprintf("%s[%d]", t.Kind, t.Width)
}

// Compile turns an input mask and its pattern into tokens. Mask and pattern
// must have the same rune length.
func Compile(mask, pattern string) ([]Token, error) {
	if utf8.RuneCountInString(mask) != utf8.RuneCountInString(pattern) {
		return nil, fmt.Errorf("%w: pattern %q is not aligned with mask %q", ErrPattern, pattern, mask)
	}
	return compile([]rune(mask), []rune(pattern)), nil
}

// CompileOutput is the permissive variant of Compile used for output
// patterns: pattern text beyond the end of the mask is literal, and mask
// text beyond the end of the pattern is ignored.
func CompileOutput(mask, pattern string) ([]Token, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty output pattern", ErrPattern)
	}
	return compile([]rune(mask), []rune(pattern)), nil
}

// compile walks pattern and mask in lockstep. A position is a placeholder
// when the pattern rune is a placeholder letter and differs from the mask
// rune; runs of the same letter form one token.
func compile(mask, pattern []rune) []Token {
	var tokens []Token
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			s := lit.String()
			tokens = append(tokens, Token{Kind: Literal, Text: s, Width: utf8.RuneCountInString(s)})
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); {
		kind := kindAt(mask, pattern, i)
		if kind == Literal {
			lit.WriteRune(pattern[i])
			i++
			continue
		}
		j := i + 1
		for j < len(pattern) && pattern[j] == pattern[i] && kindAt(mask, pattern, j) == kind {
			j++
		}
		flush()
		tokens = append(tokens, Token{Kind: kind, Width: j - i})
		i = j
	}
	flush()
	return tokens
}

func kindAt(mask, pattern []rune, i int) Kind {
	if i >= len(mask) {
		return Literal
	}
	kind, ok := placeholderKinds[pattern[i]]
	if !ok || mask[i] == pattern[i] {
		return Literal
	}
	return kind
}
