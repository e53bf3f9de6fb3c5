// Package textfold provides the Unicode hygiene shared by rule matching and
// normalization: NFC composition and the two whitespace classes the rule
// tables were written against.
//
// Catalogue exports mix composed and decomposed umlauts ("März" as
// M-a-U+0308-r-z), and rule masks compare rune by rune, so every input is
// composed before it is shaped.
//
// All functions are safe for concurrent use.
package textfold

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ComposeNFC returns s in Unicode normalization form C.
func ComposeNFC(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// IsSpaceChar reports whether r is a Unicode space separator (categories
// Zs, Zl and Zp). Tabs and newlines are not space chars.
func IsSpaceChar(r rune) bool {
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}

// IsWhitespace reports whether r is one of the ASCII whitespace characters
// space, tab, newline, vertical tab, form feed and carriage return.
func IsWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// StripWhitespace removes every IsWhitespace rune from s.
func StripWhitespace(s string) string {
	if strings.IndexFunc(s, IsWhitespace) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if IsWhitespace(r) {
			return -1
		}
		return r
	}, s)
}

// RuneLen returns the number of runes in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
