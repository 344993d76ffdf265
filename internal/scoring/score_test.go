package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchScore_ExactMatch(t *testing.T) {
	score := MatchScore([]string{"fintech"}, []string{"fintech"}, 3, 1, 9)
	assert.Equal(t, 3, score)
}

func TestMatchScore_PartialMatchEitherDirection(t *testing.T) {
	// item tag contains signal tag
	score := MatchScore([]string{"fintech-payments"}, []string{"fintech"}, 3, 1, 9)
	assert.Equal(t, 1, score)

	// signal tag contains item tag
	score = MatchScore([]string{"fintech"}, []string{"fintech-payments"}, 3, 1, 9)
	assert.Equal(t, 1, score)
}

func TestMatchScore_NoMatch(t *testing.T) {
	score := MatchScore([]string{"healthcare"}, []string{"fintech"}, 3, 1, 9)
	assert.Equal(t, 0, score)
}

func TestMatchScore_ExactBeatsPartial(t *testing.T) {
	// Both an exact and a partial candidate exist for the same signal tag;
	// only the best match per signal counts.
	score := MatchScore([]string{"fintech", "fintech-payments"}, []string{"fintech"}, 3, 1, 9)
	assert.Equal(t, 3, score)
}

func TestMatchScore_CappedTotal(t *testing.T) {
	itemTags := []string{"a", "b", "c", "d"}
	signalTags := []string{"a", "b", "c", "d"}
	score := MatchScore(itemTags, signalTags, 3, 1, 9)
	assert.Equal(t, 9, score, "four exact matches worth 12 must cap at 9")
}

func TestMatchScore_UncappedWhenCapZero(t *testing.T) {
	itemTags := []string{"a", "b", "c", "d", "e", "f"}
	score := MatchScore(itemTags, itemTags, 2, 1, 0)
	assert.Equal(t, 12, score)
}

func TestMatchScore_CaseAndWhitespaceInsensitive(t *testing.T) {
	score := MatchScore([]string{" FinTech "}, []string{"fintech"}, 3, 1, 9)
	assert.Equal(t, 3, score)
}

func TestMatchScore_EmptyTagsIgnored(t *testing.T) {
	score := MatchScore([]string{"", "fintech"}, []string{"", "fintech"}, 3, 1, 9)
	assert.Equal(t, 3, score)
}

func TestIndustryScore_MatchedIndustryTag(t *testing.T) {
	// A single overlapping industry tag contributes exactly the direct weight.
	score := IndustryScore([]string{"fintech", "b2b-saas"}, []string{"fintech"})
	assert.Equal(t, 3, score)
}

func TestThemeScore_DirectAndPartialWeights(t *testing.T) {
	assert.Equal(t, 2, ThemeScore([]string{"scale"}, []string{"scale"}))
	assert.Equal(t, 1, ThemeScore([]string{"cost-reduction"}, []string{"cost"}))
	assert.Equal(t, 0, ThemeScore([]string{"growth"}, []string{"scale"}))
}
