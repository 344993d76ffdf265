package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-forge/internal/conflicts"
	"github.com/jonathan/resume-forge/internal/types"
)

func planLibrary() []types.ContentItem {
	return []types.ContentItem{
		{ID: "sum-1", Category: types.CategorySummary, Tags: types.Tags{Function: []string{"product-management"}}, Text: "summary one"},
		{ID: "hl-1", Category: types.CategoryHighlight, Tags: types.Tags{Industry: []string{"fintech"}}, Text: "highlight one"},
		{ID: "hl-2", Category: types.CategoryHighlight, Text: "highlight two"},
		{ID: "b1-1", Category: types.CategoryBullet, PositionSlot: 1, Tags: types.Tags{Industry: []string{"fintech"}}, Text: "role1 bullet one"},
		{ID: "b1-2", Category: types.CategoryBullet, PositionSlot: 1, Text: "role1 bullet two"},
		{ID: "b2-1", Category: types.CategoryBullet, PositionSlot: 2, Text: "role2 bullet one"},
		{ID: "ov-1", Category: types.CategoryOverview, Text: "overview one"},
	}
}

func TestBuildPlan_SelectsEveryCategory(t *testing.T) {
	plan := BuildPlan(planLibrary(), nil, testSignals(), Quotas{
		Highlights:  2,
		RoleBullets: map[int]int{1: 2, 2: 1},
	})

	require.NotNil(t, plan.Summary)
	assert.Equal(t, "sum-1", plan.Summary.ItemID)
	assert.Len(t, plan.Highlights, 2)
	assert.Len(t, plan.RoleBullets[1], 2)
	assert.Len(t, plan.RoleBullets[2], 1)
	require.NotNil(t, plan.Overview)
	assert.Equal(t, "ov-1", plan.Overview.ItemID)
	assert.Empty(t, plan.EmptyCategories)
}

func TestBuildPlan_ConflictBlocksLaterCategory(t *testing.T) {
	// hl-1 wins the highlight selection; its conflict with b1-1 must remove
	// b1-1 from the role-1 bullet pool even though b1-1 scores highest there.
	table := conflicts.SymmetricClosure(map[string][]string{"hl-1": {"b1-1"}})

	plan := BuildPlan(planLibrary(), table, testSignals(), Quotas{
		Highlights:  1,
		RoleBullets: map[int]int{1: 2},
	})

	require.Len(t, plan.Highlights, 1)
	assert.Equal(t, "hl-1", plan.Highlights[0].ItemID)

	require.Len(t, plan.RoleBullets[1], 1)
	assert.Equal(t, "b1-2", plan.RoleBullets[1][0].ItemID)
	assert.Contains(t, plan.BlockedIDs, "b1-1")
}

func TestBuildPlan_EarlierCategoryWinsConflict(t *testing.T) {
	// The conflict is declared from the bullet side, but the highlight
	// category runs first, so the highlight keeps the item.
	table := conflicts.SymmetricClosure(map[string][]string{"b1-1": {"hl-1"}})

	plan := BuildPlan(planLibrary(), table, testSignals(), Quotas{
		Highlights:  1,
		RoleBullets: map[int]int{1: 1},
	})

	require.Len(t, plan.Highlights, 1)
	assert.Equal(t, "hl-1", plan.Highlights[0].ItemID)
	require.Len(t, plan.RoleBullets[1], 1)
	assert.NotEqual(t, "b1-1", plan.RoleBullets[1][0].ItemID)
}

func TestBuildPlan_SelectedIDsCannotRepeat(t *testing.T) {
	// A highlight item selected early is blocked for all later categories.
	plan := BuildPlan(planLibrary(), nil, testSignals(), Quotas{
		Highlights:  2,
		RoleBullets: map[int]int{1: 2},
	})

	for _, c := range plan.RoleBullets[1] {
		for _, h := range plan.Highlights {
			assert.NotEqual(t, h.BaseID, c.BaseID)
		}
	}
}

func TestBuildPlan_EmptyCategorySurfaced(t *testing.T) {
	library := []types.ContentItem{
		{ID: "hl-1", Category: types.CategoryHighlight, Text: "only highlights"},
	}

	plan := BuildPlan(library, nil, testSignals(), Quotas{
		Highlights:  1,
		RoleBullets: map[int]int{1: 2},
	})

	assert.Nil(t, plan.Summary)
	assert.Contains(t, plan.EmptyCategories, "summary")
	assert.Contains(t, plan.EmptyCategories, "bullet (role 1)")
	assert.Contains(t, plan.EmptyCategories, "overview")
}

func TestBuildPlan_RoleSlotsProcessedInOrder(t *testing.T) {
	// conflict between the two roles' top bullets: slot 1 runs first and wins.
	table := conflicts.SymmetricClosure(map[string][]string{"b1-1": {"b2-1"}})

	plan := BuildPlan(planLibrary(), table, testSignals(), Quotas{
		RoleBullets: map[int]int{1: 1, 2: 1},
	})

	require.Len(t, plan.RoleBullets[1], 1)
	assert.Equal(t, "b1-1", plan.RoleBullets[1][0].ItemID)
	assert.Empty(t, plan.RoleBullets[2], "slot 2's only bullet conflicts with slot 1's pick")
	assert.Contains(t, plan.EmptyCategories, "bullet (role 2)")
}

func TestSelectionErrors(t *testing.T) {
	plan := &Plan{EmptyCategories: []string{"summary", "overview"}}

	errs := plan.SelectionErrors()

	require.Len(t, errs, 2)
	assert.EqualError(t, errs[0], `no eligible content items for category "summary"`)
}

func TestDefaultQuotas(t *testing.T) {
	quotas := DefaultQuotas()
	assert.Equal(t, 5, quotas.Highlights)
	assert.Equal(t, 4, quotas.RoleBullets[1])
	assert.Equal(t, 3, quotas.RoleBullets[2])
}
