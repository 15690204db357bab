package textutil

import (
	"strings"
	"unicode"
)

// Tokens splits on anything that is not a letter or digit.
func Tokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ContainsToken reports whether the tokens of `token` appear in `s` as a
// contiguous run of whole tokens, so "12" is found in "Flat 12, High St" but
// not in "120 High St", and "Flat 3" is found in "Flat 3, Elm Rd".
func ContainsToken(s, token string) bool {
	needle := Tokens(token)
	if len(needle) == 0 {
		return false
	}
	haystack := Tokens(s)
	for start := 0; start+len(needle) <= len(haystack); start++ {
		if tokensEqual(haystack[start:start+len(needle)], needle) {
			return true
		}
	}
	return false
}

func tokensEqual(a, b []string) bool {
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}
