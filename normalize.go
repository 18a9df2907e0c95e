package jsonish

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lowerCaser = cases.Lower(language.Und)

// equalFoldASCII reports case-insensitive equality using Unicode case
// folding (spec §4.5.6 step 2).
func equalFoldASCII(a, b string) bool {
	return strings.EqualFold(a, b)
}

// normalizeLiteralText decomposes Unicode, strips combining marks and
// punctuation, and lower-cases, for the punctuation-stripped normalized
// comparison tier of literal matching (spec §4.5.6 step 2).
func normalizeLiteralText(s string) string {
	decomposed := norm.NFD.String(s)
	var sb strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue // strip combining marks left behind by NFD
		}
		if unicode.IsPunct(r) || unicode.IsSpace(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return lowerCaser.String(sb.String())
}
