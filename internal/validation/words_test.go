package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("   "))
	assert.Equal(t, 3, CountWords("led the migration"))
	assert.Equal(t, 3, CountWords("  led   the\tmigration\n"))
}

func TestLeadingVerb(t *testing.T) {
	assert.Equal(t, "led", LeadingVerb("Led the migration"))
	assert.Equal(t, "delivered", LeadingVerb("Delivered, on time"))
	assert.Equal(t, "", LeadingVerb(""))
	assert.Equal(t, "", LeadingVerb("   "))
}

func TestNumericClaims_PlainNumbers(t *testing.T) {
	claims := NumericClaims("Grew team from 4 to 12 engineers")
	assert.Equal(t, []string{"4", "12"}, claims)
}

func TestNumericClaims_PercentAndDollar(t *testing.T) {
	claims := NumericClaims("Cut costs by 30% saving $1.2M annually")
	assert.Contains(t, claims, "30%")
	assert.Contains(t, claims, "$1.2")
}

func TestNumericClaims_Deduplicated(t *testing.T) {
	claims := NumericClaims("Shipped 3 products across 3 markets")
	assert.Equal(t, []string{"3"}, claims)
}

func TestNumericClaims_TrailingSentencePunctuationStripped(t *testing.T) {
	claims := NumericClaims("Increased revenue by 40.")
	assert.Equal(t, []string{"40"}, claims)
}

func TestNumericClaims_NoNumbers(t *testing.T) {
	assert.Empty(t, NumericClaims("Led cross-functional planning"))
}

func TestWordRange_Boundaries(t *testing.T) {
	r := WordRange{Min: 25, Max: 40}

	assert.False(t, r.Contains(24))
	assert.True(t, r.Contains(25))
	assert.True(t, r.Contains(40))
	assert.False(t, r.Contains(41))
}

func TestWordRange_ZeroValueAcceptsAny(t *testing.T) {
	var r WordRange
	assert.True(t, r.Contains(0))
	assert.True(t, r.Contains(10_000))
}

// words builds a text with exactly n words starting with the given verb.
func words(verb string, n int) string {
	parts := make([]string, n)
	parts[0] = verb
	for i := 1; i < n; i++ {
		parts[i] = "word"
	}
	return strings.Join(parts, " ")
}
