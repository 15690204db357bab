// Package postcode canonicalizes free-form UK postcode input.
package postcode

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// inwardLength is the length of the inward code, the part after the space.
const inwardLength = 3

// Postcode is a postcode in canonical "OUTWARD INWARD" form. It is not
// necessarily a valid postcode, see Valid.
type Postcode string

// Normalize removes all whitespace, uppercases, and puts a single space before
// the last three characters. Input of three characters or fewer is returned
// uppercased with no space. It never fails.
func Normalize(raw string) Postcode {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	runes := []rune(strings.ToUpper(compact))

	if len(runes) <= inwardLength {
		return Postcode(string(runes))
	}
	split := len(runes) - inwardLength
	return Postcode(string(runes[:split]) + " " + string(runes[split:]))
}

func (p Postcode) String() string {
	return string(p)
}

func (p Postcode) Empty() bool {
	return p == ""
}

// Outward returns the part before the space, or the whole postcode if there
// is no inward part.
func (p Postcode) Outward() string {
	outward, _, _ := strings.Cut(string(p), " ")
	return outward
}

// Inward returns the final three characters, or "" for a postcode without
// an inward part.
func (p Postcode) Inward() string {
	_, inward, _ := strings.Cut(string(p), " ")
	return inward
}

// District is the first three characters of the postcode, as used in
// 192.com place urls. "B6 1AA" yields "B6".
func (p Postcode) District() string {
	runes := []rune(string(p))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.TrimSpace(string(runes))
}

// Area is the lowercased first letter of the postcode.
func (p Postcode) Area() string {
	if p == "" {
		return ""
	}
	first, _ := utf8.DecodeRuneInString(string(p))
	return strings.ToLower(string(first))
}

var ukPostcode = regexp.MustCompile(`^[A-Z]{1,2}\d[A-Z\d]? \d[A-Z]{2}$`)

// Valid reports whether the postcode matches the UK postcode grammar.
// Normalize does not check this.
func Valid(p Postcode) bool {
	return ukPostcode.MatchString(string(p))
}
