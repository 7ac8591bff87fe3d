package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

// TrimAndNormalize trims the string and collapses internal runs of
// whitespace to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeDestination prepares a destination search term: trimmed,
// collapsed whitespace, lowercased.
func NormalizeDestination(destination string) string {
	return strings.ToLower(TrimAndNormalize(destination))
}

var regexMeta = regexp.MustCompile(`[.*+?^${}()|\[\]\\]`)

// EscapeRegex escapes regex metacharacters so the term matches
// literally inside a MongoDB $regex filter. Unescaped terms allow
// patterns like "(a+)+b" with exponential backtracking.
func EscapeRegex(s string) string {
	return regexMeta.ReplaceAllString(s, `\$0`)
}
