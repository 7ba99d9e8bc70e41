package util

import (
	"strings"
	"unicode"
)

// SanitizeCountry strips every character that is not a letter, space, hyphen
// or apostrophe, then collapses surrounding whitespace. Country names like
// "Côte d'Ivoire" or "Guinea-Bissau" survive intact.
func SanitizeCountry(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || r == ' ' || r == '-' || r == '\'' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
