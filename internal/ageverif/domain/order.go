package domain

import (
	"strings"
	"unicode"
)

// NormalizePostcode strips all whitespace and upper-cases, so "ab12 3cd"
// and "AB123CD" compare equal.
func NormalizePostcode(postcode string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, postcode)
}

// PostcodesMatch compares two postcodes after normalisation. Empty never
// matches.
func PostcodesMatch(a, b string) bool {
	na, nb := NormalizePostcode(a), NormalizePostcode(b)
	return na != "" && na == nb
}

// NormalizeOrderName prefixes "#" when missing: "1001" -> "#1001".
func NormalizeOrderName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.HasPrefix(name, "#") {
		return name
	}
	return "#" + name
}
