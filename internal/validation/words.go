// Package validation provides pure, deterministic structural checks over
// generated stage outputs.
package validation

import (
	"regexp"
	"strings"
)

var numericClaimPattern = regexp.MustCompile(`\$?\d[\d,.]*%?`)

// CountWords counts whitespace-separated words in a text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// LeadingVerb returns the lowercased first word of a text, with trailing
// punctuation stripped. Resume content conventionally leads with an action
// verb, so the first word is treated as the verb for diversity checks.
func LeadingVerb(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.TrimRight(fields[0], ".,!?;:"))
}

// NumericClaims extracts the numeric claim tokens from a text: plain numbers,
// percentages, and dollar amounts. These are the metrics that must not be
// repeated across stages.
func NumericClaims(text string) []string {
	matches := numericClaimPattern.FindAllString(text, -1)
	claims := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		m = strings.TrimRight(m, ".,")
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		claims = append(claims, m)
	}
	return claims
}
