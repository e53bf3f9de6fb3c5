package timeparser

import "errors"

// Failure kinds. Every error returned by Parser.Parse wraps exactly one of
// them together with the underlying cause.
var (
	ErrAmbiguousRule = errors.New("timeparser: ambiguous rule match")
	ErrNormalization = errors.New("timeparser: normalization failed")
	ErrGrammar       = errors.New("timeparser: expression not understood")
	ErrCalendar      = errors.New("timeparser: invalid calendar date")
)

// errEmptyInput marks an empty input in batch results. It has no kind.
var errEmptyInput = errors.New("timeparser: empty input")

// kindNames maps failure kinds to short machine-readable names.
var kindNames = []struct {
	err  error
	name string
}{
	{ErrAmbiguousRule, "ambiguous_rule"},
	{ErrNormalization, "normalization"},
	{ErrGrammar, "grammar"},
	{ErrCalendar, "calendar"},
}

// ErrorKind returns the short name of the failure kind wrapped by err
// ("ambiguous_rule", "normalization", "grammar" or "calendar"), or "" if
// err is nil or of no known kind.
func ErrorKind(err error) string {
	for _, k := range kindNames {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}
