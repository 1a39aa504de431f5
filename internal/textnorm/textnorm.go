// Package textnorm folds free-form Indonesian text for loose comparisons.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripMarks decomposes s (NFKD) and removes combining marks.
func StripMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold strips diacritics, lower-cases and trims s.
func Fold(s string) string {
	return strings.TrimSpace(strings.ToLower(StripMarks(s)))
}

// Normalize folds s, turns '-', '_' and '/' into spaces and collapses whitespace.
func Normalize(s string) string {
	folded := strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', '/':
			return ' '
		}
		return r
	}, Fold(s))
	return collapse(folded)
}

// Alnum folds s and replaces every non-alphanumeric rune with a space.
func Alnum(s string) string {
	folded := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, Fold(s))
	return collapse(folded)
}

// Contains reports whether needle occurs in haystack after folding both.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
