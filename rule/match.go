package rule

import (
	"slices"
	"strings"
	"unicode"

	"github.com/mbuechner/timeparser/internal/textfold"
)

// digitPlaceholder marks a mask position that must hold a digit.
const digitPlaceholder = '#'

// literalRunes must appear verbatim in the input at their mask position.
// Note the two different dashes.
const literalRunes = ",=?/()-–.[]0acuorcfAMJhDVIZX"

// periodNames are masks that name an art-historical period; they match only
// the identical input.
var periodNames = []string{"Ottonisch", "Römisch", "Karolingisch", "Klassizistisch"}

// Matches reports whether mask fits shaped, the output of normalize.Shape.
func Matches(mask, shaped string) bool {
	m, in := []rune(mask), []rune(shaped)
	if len(m) != len(in) ||
		textfold.RuneLen(textfold.StripWhitespace(mask)) != textfold.RuneLen(textfold.StripWhitespace(shaped)) {
		return false
	}
	if slices.Contains(periodNames, mask) {
		return mask == shaped
	}
	for i := range m {
		if !runeMatches(m[i], in[i]) {
			return false
		}
	}
	return true
}

func runeMatches(mask, in rune) bool {
	maskSpace, inSpace := textfold.IsSpaceChar(mask), textfold.IsSpaceChar(in)
	switch {
	case mask == digitPlaceholder:
		return unicode.IsDigit(in)
	case maskSpace || inSpace:
		return maskSpace && inSpace
	case strings.ContainsRune(literalRunes, mask):
		return mask == in
	default:
		return true
	}
}

// Select returns the rules whose input mask fits shaped, reduced to those
// with the fewest '#' and deduplicated in table order.
func Select(rules []Rule, shaped string) []Rule {
	var found []Rule
	fewest := -1
	for _, r := range rules {
		if !Matches(r.InputMask, shaped) {
			continue
		}
		n := CountHashes(r.InputMask)
		switch {
		case fewest == -1 || n < fewest:
			fewest = n
			found = append(found[:0], r)
		case n == fewest && !slices.Contains(found, r):
			found = append(found, r)
		}
	}
	return found
}

// CountHashes returns the number of digit placeholders in mask.
func CountHashes(mask string) int {
	return strings.Count(mask, string(digitPlaceholder))
}
