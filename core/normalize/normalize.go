// Package normalize canonicalizes surface text for cross-script comparison.
//
// The same canonical form is used when building verse search text and when
// normalizing an incoming quote, so punctuation and whitespace differences
// never block a match. Input is NFC-composed first so decomposed Greek or
// Hebrew accents compare equal to their composed forms.
//
// All functions are deterministic, side-effect-free, and safe for concurrent
// use by multiple goroutines.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns the canonical form of s: NFC-composed, lowercased, with
// all characters that are neither Unicode letters nor digits nor whitespace
// stripped, runs of whitespace collapsed to one space, and ends trimmed.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(norm.NFC.String(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}
	return b.String()
}

// Equal reports whether a and b normalize to the same canonical form.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
