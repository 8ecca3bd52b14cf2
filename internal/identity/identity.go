// Package identity normalizes person names and department labels so that
// documents typed by different operators still match. Two names refer to the
// same entity iff their normalized forms are equal; there is deliberately no
// fuzzy or typo tolerance.
package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize decomposes the text, strips diacritics, lowercases and trims.
func Normalize(text string) string {
	folded, _, err := transform.String(foldDiacritics, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Equal reports whether two raw strings denote the same identity.
func Equal(a string, b string) bool {
	return Normalize(a) == Normalize(b)
}
