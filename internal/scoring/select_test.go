package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-forge/internal/types"
)

func testSignals() *types.RequirementSignals {
	return &types.RequirementSignals{
		Industries: []string{"fintech"},
		Functions:  []string{"product-management"},
		Themes:     []string{"scale"},
	}
}

func highlightItem(id string, industry, function []string) types.ContentItem {
	return types.ContentItem{
		ID:       id,
		Category: types.CategoryHighlight,
		Tags:     types.Tags{Industry: industry, Function: function},
		Text:     "text for " + id,
	}
}

func TestScoreItem_TotalIsComponentSum(t *testing.T) {
	item := highlightItem("h1", []string{"fintech"}, []string{"product-management"})
	item.PhrasingVariants = []types.Variant{
		{ID: "h1-v1", BaseID: "h1", ThemeTags: []string{"scale"}, Text: "variant text"},
	}

	candidate := ScoreItem(item, testSignals())

	assert.Equal(t, 3, candidate.IndustryScore)
	assert.Equal(t, 3, candidate.FunctionScore)
	assert.Equal(t, 2, candidate.ThemeScore)
	assert.Equal(t, 8, candidate.TotalScore)
}

func TestScoreItem_SelectsBestThemeVariant(t *testing.T) {
	item := highlightItem("h1", nil, nil)
	item.PhrasingVariants = []types.Variant{
		{ID: "h1-v1", BaseID: "h1", ThemeTags: []string{"growth"}, Text: "growth phrasing"},
		{ID: "h1-v2", BaseID: "h1", ThemeTags: []string{"scale"}, Text: "scale phrasing"},
	}

	candidate := ScoreItem(item, testSignals())

	assert.Equal(t, "h1-v2", candidate.SelectedVariantID)
	assert.Equal(t, "scale phrasing", candidate.Text)
	assert.Equal(t, 2, candidate.ThemeScore)
}

func TestScoreItem_VariantTieKeepsFirstSeen(t *testing.T) {
	item := highlightItem("h1", nil, nil)
	item.PhrasingVariants = []types.Variant{
		{ID: "h1-v1", BaseID: "h1", ThemeTags: []string{"scale"}, Text: "first"},
		{ID: "h1-v2", BaseID: "h1", ThemeTags: []string{"scale"}, Text: "second"},
	}

	candidate := ScoreItem(item, testSignals())

	assert.Equal(t, "h1-v1", candidate.SelectedVariantID)
	assert.Equal(t, "first", candidate.Text)
}

func TestScoreItem_NoVariantsKeepsBaseText(t *testing.T) {
	item := highlightItem("h1", []string{"fintech"}, nil)

	candidate := ScoreItem(item, testSignals())

	assert.Empty(t, candidate.SelectedVariantID)
	assert.Equal(t, "text for h1", candidate.Text)
	assert.Zero(t, candidate.ThemeScore)
}

func TestSelectTopN_SortedByTotalDescending(t *testing.T) {
	pool := []types.ContentItem{
		highlightItem("low", nil, nil),
		highlightItem("high", []string{"fintech"}, []string{"product-management"}),
		highlightItem("mid", []string{"fintech"}, nil),
	}

	selected := SelectTopN(pool, testSignals(), 3)

	require.Len(t, selected, 3)
	assert.Equal(t, "high", selected[0].ItemID)
	assert.Equal(t, "mid", selected[1].ItemID)
	assert.Equal(t, "low", selected[2].ItemID)
}

func TestSelectTopN_TruncatesToN(t *testing.T) {
	pool := []types.ContentItem{
		highlightItem("a", nil, nil),
		highlightItem("b", nil, nil),
		highlightItem("c", nil, nil),
	}

	selected := SelectTopN(pool, testSignals(), 2)
	assert.Len(t, selected, 2)
}

func TestSelectTopN_TieKeepsLibraryOrder(t *testing.T) {
	pool := []types.ContentItem{
		highlightItem("first", []string{"fintech"}, nil),
		highlightItem("second", []string{"fintech"}, nil),
	}

	selected := SelectTopN(pool, testSignals(), 1)

	require.Len(t, selected, 1)
	assert.Equal(t, "first", selected[0].ItemID)
}

func TestSelectTopN_EmptyPool(t *testing.T) {
	assert.Nil(t, SelectTopN(nil, testSignals(), 5))
}

func TestSelectSummary_ByFunctionScoreAlone(t *testing.T) {
	strongIndustry := types.ContentItem{
		ID: "s1", Category: types.CategorySummary,
		Tags: types.Tags{Industry: []string{"fintech"}},
		Text: "industry summary",
	}
	strongFunction := types.ContentItem{
		ID: "s2", Category: types.CategorySummary,
		Tags: types.Tags{Function: []string{"product-management"}},
		Text: "function summary",
	}

	best := SelectSummary([]types.ContentItem{strongIndustry, strongFunction}, testSignals())

	require.NotNil(t, best)
	assert.Equal(t, "s2", best.ItemID, "summary selection must rank by function score, not total")
}

func TestSelectSummary_TieKeepsFirstSeen(t *testing.T) {
	a := types.ContentItem{ID: "s1", Category: types.CategorySummary, Text: "a"}
	b := types.ContentItem{ID: "s2", Category: types.CategorySummary, Text: "b"}

	best := SelectSummary([]types.ContentItem{a, b}, testSignals())

	require.NotNil(t, best)
	assert.Equal(t, "s1", best.ItemID)
}

func TestSelectSummary_EmptyPool(t *testing.T) {
	assert.Nil(t, SelectSummary(nil, testSignals()))
}

func TestFilterCategory_ByCategoryAndSlot(t *testing.T) {
	pool := []types.ContentItem{
		{ID: "b1", Category: types.CategoryBullet, PositionSlot: 1},
		{ID: "b2", Category: types.CategoryBullet, PositionSlot: 2},
		{ID: "h1", Category: types.CategoryHighlight},
	}

	bullets := FilterCategory(pool, types.CategoryBullet, 1)
	require.Len(t, bullets, 1)
	assert.Equal(t, "b1", bullets[0].ID)

	highlights := FilterCategory(pool, types.CategoryHighlight, 0)
	require.Len(t, highlights, 1)
	assert.Equal(t, "h1", highlights[0].ID)
}
