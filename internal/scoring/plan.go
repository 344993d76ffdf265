package scoring

import (
	"fmt"
	"sort"

	"github.com/jonathan/resume-forge/internal/conflicts"
	"github.com/jonathan/resume-forge/internal/types"
)

// Quotas configures the category-specific top-N selection counts.
type Quotas struct {
	Highlights  int         `json:"highlights"`
	RoleBullets map[int]int `json:"role_bullets"` // position slot -> bullet count
}

// DefaultQuotas returns the standard selection counts: 5 highlights, 4 bullets
// for the most recent role, 3 for the one before it.
func DefaultQuotas() Quotas {
	return Quotas{
		Highlights:  5,
		RoleBullets: map[int]int{1: 4, 2: 3},
	}
}

// Plan is the outcome of one full selection pass over the content library.
type Plan struct {
	Summary     *types.ScoredCandidate          `json:"summary,omitempty"`
	Highlights  []types.ScoredCandidate         `json:"highlights"`
	RoleBullets map[int][]types.ScoredCandidate `json:"role_bullets"`
	Overview    *types.ScoredCandidate          `json:"overview,omitempty"`
	BlockedIDs  []string                        `json:"blocked_ids"`
	// EmptyCategories lists categories that had zero eligible candidates.
	// Surfaced to the caller, never silently papered over.
	EmptyCategories []string `json:"empty_categories,omitempty"`
}

// BuildPlan runs the full selection sequence: summary, highlights, then the
// role bullet categories in slot order, then overview. After each category
// finalizes, the conflict sets of its selected items are blocked from every
// later category's eligible pool. Blocking is applied before scoring and is
// irreversible within the run.
func BuildPlan(library []types.ContentItem, table types.ConflictTable, signals *types.RequirementSignals, quotas Quotas) *Plan {
	resolver := conflicts.NewResolver(table)
	plan := &Plan{RoleBullets: make(map[int][]types.ScoredCandidate)}

	// Summary: exactly one item, chosen by function score alone.
	summaryPool := resolver.Filter(FilterCategory(library, types.CategorySummary, 0))
	if summary := SelectSummary(summaryPool, signals); summary != nil {
		plan.Summary = summary
		resolver.Block([]string{summary.BaseID})
	} else {
		plan.EmptyCategories = append(plan.EmptyCategories, string(types.CategorySummary))
	}

	// Highlights.
	highlightPool := resolver.Filter(FilterCategory(library, types.CategoryHighlight, 0))
	plan.Highlights = SelectTopN(highlightPool, signals, quotas.Highlights)
	if len(plan.Highlights) == 0 {
		plan.EmptyCategories = append(plan.EmptyCategories, string(types.CategoryHighlight))
	}
	resolver.Block(BaseIDs(plan.Highlights))

	// Role bullets, most recent role first.
	for _, slot := range sortedSlots(quotas.RoleBullets) {
		pool := resolver.Filter(FilterCategory(library, types.CategoryBullet, slot))
		selected := SelectTopN(pool, signals, quotas.RoleBullets[slot])
		plan.RoleBullets[slot] = selected
		if len(selected) == 0 {
			plan.EmptyCategories = append(plan.EmptyCategories, fmt.Sprintf("%s (role %d)", types.CategoryBullet, slot))
		}
		resolver.Block(BaseIDs(selected))
	}

	// Overview: one item by total score.
	overviewPool := resolver.Filter(FilterCategory(library, types.CategoryOverview, 0))
	if overview := SelectTopN(overviewPool, signals, 1); len(overview) > 0 {
		plan.Overview = &overview[0]
		resolver.Block([]string{plan.Overview.BaseID})
	} else {
		plan.EmptyCategories = append(plan.EmptyCategories, string(types.CategoryOverview))
	}

	plan.BlockedIDs = resolver.BlockedIDs()
	return plan
}

func sortedSlots(roleBullets map[int]int) []int {
	slots := make([]int, 0, len(roleBullets))
	for slot := range roleBullets {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	return slots
}
