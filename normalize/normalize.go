// Package normalize rewrites catalogue date expressions into the canonical
// form read by the time span grammar.
//
// A rewrite is described by two mask/pattern pairs. The mask is the literal
// shape of a string ("##.##.####"); the pattern is aligned with it rune by
// rune and marks which positions hold values:
//
//	mask     ##.##.####      ####-##-##
//	pattern  DD.NN.YYYY  ->  YYYY-NN-DD
//
// Pattern letters Y (year), N (month), D (day), W (weekday) and E (era
// marker) are placeholders wherever they differ from the mask rune; every
// other position is literal text. "Mitte ##. Jh." with pattern
// "Mitte YY. Jh." therefore has a single Year placeholder.
//
// Month and weekday names are replaced by fixed-width codes before masks are
// compared (Shape) and before values are extracted (Substitute), so
// "15. März 1920" is seen as "15. MM 1920" and read as "15. 03 1920".
//
// All functions are safe for concurrent use by multiple goroutines.
package normalize

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the compiler, extractor and renderer.
var (
	ErrPattern = errors.New("normalize: invalid pattern")
	ErrExtract = errors.New("normalize: cannot extract values")
	ErrRender  = errors.New("normalize: cannot render output")
)

// Transform is a compiled rewrite from one input shape to the canonical form.
// A Transform is immutable after construction.
type Transform struct {
	in  []Token
	out []Token
}

// NewTransform compiles the input and output mask/pattern pairs of a rule.
func NewTransform(inputMask, inputPattern, outputMask, outputPattern string) (*Transform, error) {
	in, err := Compile(inputMask, inputPattern)
	if err != nil {
		return nil, fmt.Errorf("input side: %w", err)
	}
	out, err := CompileOutput(outputMask, outputPattern)
	if err != nil {
		return nil, fmt.Errorf("output side: %w", err)
	}
	return &Transform{in: in, out: out}, nil
}

// Apply extracts the values of raw and renders them into the output pattern.
func (t *Transform) Apply(raw string) (string, error) {
	values, err := Extract(t.in, raw)
	if err != nil {
		return "", err
	}
	return Render(t.out, values)
}

// Input returns a copy of the compiled input tokens.
func (t *Transform) Input() []Token {
	return append([]Token(nil), t.in...)
}

// Output returns a copy of the compiled output tokens.
func (t *Transform) Output() []Token {
	return append([]Token(nil), t.out...)
}
