package timespan

import (
	"regexp"
	"strings"
)

// Position is an immutable cursor into the expression being parsed: the
// number of bytes already consumed. Accepting text returns a new Position;
// the old one stays valid for trying another alternative.
type Position struct {
	offset int
}

// Offset returns the number of bytes consumed.
func (p Position) Offset() int { return p.offset }

func (p Position) advance(n int) Position {
	return Position{offset: p.offset + n}
}

// AcceptResult is the outcome of one attempt to accept a literal or a
// pattern at a position.
type AcceptResult struct {
	Accepted bool
	Text     string   // consumed text
	Groups   []string // submatches of a pattern; Groups[0] is Text
}

// Group returns the i-th submatch, or "" if it did not participate.
func (a AcceptResult) Group(i int) string {
	if i < 0 || i >= len(a.Groups) {
		return ""
	}
	return a.Groups[i]
}

// input is the expression being parsed.
type input string

func (in input) rest(p Position) string {
	return string(in[p.offset:])
}

func (in input) done(p Position) bool {
	return p.offset >= len(in)
}

// accept matches lit at p.
func (in input) accept(p Position, lit string) (AcceptResult, Position) {
	if !strings.HasPrefix(in.rest(p), lit) {
		return AcceptResult{}, p
	}
	return AcceptResult{Accepted: true, Text: lit, Groups: []string{lit}}, p.advance(len(lit))
}

// acceptPattern matches re at p. re must be anchored with ^.
func (in input) acceptPattern(p Position, re *regexp.Regexp) (AcceptResult, Position) {
	m := re.FindStringSubmatch(in.rest(p))
	if m == nil || m[0] == "" {
		return AcceptResult{}, p
	}
	return AcceptResult{Accepted: true, Text: m[0], Groups: m}, p.advance(len(m[0]))
}
