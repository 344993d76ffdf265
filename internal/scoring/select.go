package scoring

import (
	"sort"

	"github.com/jonathan/resume-forge/internal/types"
)

// ScoreItem produces a fresh ScoredCandidate for one content item against the
// run's requirement signals. The variant with the highest theme score among
// the item's phrasing variants is chosen; ties keep the first-seen variant in
// library order, which is the documented tie-break policy.
func ScoreItem(item types.ContentItem, signals *types.RequirementSignals) types.ScoredCandidate {
	candidate := types.ScoredCandidate{
		ItemID:        item.ID,
		BaseID:        item.ID,
		IndustryScore: IndustryScore(item.Tags.Industry, signals.Industries),
		FunctionScore: FunctionScore(item.Tags.Function, signals.Functions),
		Text:          item.Text,
	}

	// First variant is the baseline; later variants must strictly beat it.
	bestTheme := 0
	for _, variant := range item.PhrasingVariants {
		score := ThemeScore(variant.ThemeTags, signals.Themes)
		if candidate.SelectedVariantID == "" || score > bestTheme {
			bestTheme = score
			candidate.SelectedVariantID = variant.ID
			candidate.Text = variant.Text
		}
	}

	candidate.ThemeScore = bestTheme
	candidate.TotalScore = candidate.IndustryScore + candidate.FunctionScore + candidate.ThemeScore
	return candidate
}

// SelectTopN scores every eligible item and returns the configured top-N
// candidates sorted by total score descending. The sort is stable, so equal
// totals keep library order (first-seen wins). An empty pool yields an empty
// selection; the engine never synthesizes a fallback.
func SelectTopN(pool []types.ContentItem, signals *types.RequirementSignals, n int) []types.ScoredCandidate {
	if n <= 0 || len(pool) == 0 {
		return nil
	}

	candidates := make([]types.ScoredCandidate, 0, len(pool))
	for _, item := range pool {
		candidates = append(candidates, ScoreItem(item, signals))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].TotalScore > candidates[j].TotalScore
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// SelectSummary chooses exactly one summary item by function score alone.
// Ties keep the first-seen item. Returns nil when the pool is empty.
func SelectSummary(pool []types.ContentItem, signals *types.RequirementSignals) *types.ScoredCandidate {
	var best *types.ScoredCandidate
	for _, item := range pool {
		candidate := ScoreItem(item, signals)
		if best == nil || candidate.FunctionScore > best.FunctionScore {
			c := candidate
			best = &c
		}
	}
	return best
}

// FilterCategory returns the items in a pool belonging to one category. When
// positionSlot is positive, only items scoped to that prior role are kept.
func FilterCategory(pool []types.ContentItem, category types.Category, positionSlot int) []types.ContentItem {
	filtered := make([]types.ContentItem, 0, len(pool))
	for _, item := range pool {
		if item.Category != category {
			continue
		}
		if positionSlot > 0 && item.PositionSlot != positionSlot {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// BaseIDs extracts the base item IDs from a candidate list.
func BaseIDs(candidates []types.ScoredCandidate) []string {
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.BaseID)
	}
	return ids
}
