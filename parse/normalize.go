package parse

import (
	"strings"
	"unicode"
)

// TrimSpacesUnderscores removes every whitespace character and underscore
// from s, wherever they occur.
func TrimSpacesUnderscores(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '_' {
			return -1
		}

		return r
	}, s)
}

// Lower lowercases s.
func Lower(s string) string {
	return strings.ToLower(s)
}

// NormalizeKey lowercases s and strips whitespace and underscores, so that
// "Max_Count", "max count" and "maxcount" compare equal.
func NormalizeKey(s string) string {
	return Lower(TrimSpacesUnderscores(s))
}
