package moderation

import (
	"strings"
	"unicode"
)

// Normalize collapses a comment into a canonical form before matching:
// lower-cased, with spaces, punctuation and other separators stripped, so
// "b.a d" still hits a "bad" keyword. Letters and digits survive as-is.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
