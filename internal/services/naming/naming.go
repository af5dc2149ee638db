// Package naming normalizes visitor-entered names so that historical data
// entered with mixed casing, nicknames and stray spacing still resolves.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lower lower-cases s using Unicode rules. Casers are stateful, so each call
// builds its own.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Capitalize upper-cases the first rune and lower-cases the rest
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	first := cases.Upper(language.Und).String(string(r))
	return first + Lower(s[size:])
}

// Normalize trims, case-folds and strips all whitespace
func Normalize(s string) string {
	folded := cases.Fold().String(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, folded)
}

// Variants returns the ordered, de-duplicated lookup keys tried for input:
// verbatim, lower-cased, capitalized, then the whitespace-stripped forms
func Variants(input string) []string {
	stripped := Normalize(input)
	candidates := []string{
		input,
		Lower(input),
		Capitalize(input),
		stripped,
		Capitalize(stripped),
	}

	seen := make(map[string]struct{}, len(candidates))
	variants := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		variants = append(variants, c)
	}
	return variants
}
