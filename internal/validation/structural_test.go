package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-forge/internal/types"
)

func bulletRules() Rules {
	return Rules{
		RequiredCount:        2,
		ItemWords:            WordRange{Min: 25, Max: 40},
		ItemLabel:            "bullet",
		DistinctLeadingVerbs: true,
	}
}

func TestCheckStructure_CleanOutput(t *testing.T) {
	output := &types.StageOutput{Items: []types.StageItem{
		{Text: words("led", 30), SourceID: "b1"},
		{Text: words("built", 30), SourceID: "b2"},
	}}

	issues := CheckStructure(output, bulletRules(), types.AccumulatedState{})
	assert.Empty(t, issues)
}

func TestCheckStructure_WrongItemCount(t *testing.T) {
	output := &types.StageOutput{Items: []types.StageItem{
		{Text: words("led", 30), SourceID: "b1"},
	}}

	issues := CheckStructure(output, bulletRules(), types.AccumulatedState{})
	require.Len(t, issues, 1)
	assert.Equal(t, "expected exactly 2 bullets, got 1", issues[0])
}

func TestCheckStructure_WordCountBoundaries(t *testing.T) {
	rules := Rules{ItemWords: WordRange{Min: 25, Max: 40}, ItemLabel: "bullet"}

	for _, tc := range []struct {
		wordCount int
		ok        bool
	}{
		{24, false},
		{25, true},
		{40, true},
		{41, false},
	} {
		output := &types.StageOutput{Items: []types.StageItem{
			{Text: words("led", tc.wordCount), SourceID: "b1"},
		}}
		issues := CheckStructure(output, rules, types.AccumulatedState{})
		if tc.ok {
			assert.Empty(t, issues, "%d words must pass", tc.wordCount)
		} else {
			require.Len(t, issues, 1, "%d words must fail", tc.wordCount)
		}
	}
}

func TestCheckStructure_WordCountIssueFormat(t *testing.T) {
	rules := Rules{ItemWords: WordRange{Min: 25, Max: 40}, ItemLabel: "bullet"}
	output := &types.StageOutput{Items: []types.StageItem{
		{Text: words("led", 15), SourceID: "b1"},
		{Text: words("built", 20), SourceID: "b2"},
	}}

	issues := CheckStructure(output, rules, types.AccumulatedState{})
	require.Len(t, issues, 2)
	assert.Equal(t, "bullet-1 has 15 words, expected 25-40", issues[0])
	assert.Equal(t, "bullet-2 has 20 words, expected 25-40", issues[1])
}

func TestCheckStructure_RepeatedLeadingVerbWithinStage(t *testing.T) {
	output := &types.StageOutput{Items: []types.StageItem{
		{Text: words("led", 30), SourceID: "b1"},
		{Text: words("led", 30), SourceID: "b2"},
	}}

	issues := CheckStructure(output, bulletRules(), types.AccumulatedState{})
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], `repeats leading verb "led"`)
	assert.Contains(t, issues[0], "bullet-1")
}

func TestCheckStructure_VerbComparisonCaseInsensitive(t *testing.T) {
	output := &types.StageOutput{Items: []types.StageItem{
		{Text: words("Led", 30), SourceID: "b1"},
		{Text: words("led", 30), SourceID: "b2"},
	}}

	issues := CheckStructure(output, bulletRules(), types.AccumulatedState{})
	require.Len(t, issues, 1)
}

func TestCheckStructure_ReusedSourceID(t *testing.T) {
	state := types.AccumulatedState{UsedBaseIDs: []string{"b1"}}
	output := &types.StageOutput{Items: []types.StageItem{
		{Text: words("led", 30), SourceID: "b1"},
		{Text: words("built", 30), SourceID: "b2"},
	}}

	issues := CheckStructure(output, bulletRules(), state)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "reuses source item b1")
}

func TestCheckStructure_ReusedVerbFromEarlierStage(t *testing.T) {
	state := types.AccumulatedState{UsedLeadingVerbs: []string{"led"}}
	output := &types.StageOutput{Items: []types.StageItem{
		{Text: words("led", 30), SourceID: "b1"},
		{Text: words("built", 30), SourceID: "b2"},
	}}

	issues := CheckStructure(output, bulletRules(), state)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], `starts with verb "led" already used`)
}

func TestCheckStructure_RepeatedNumericClaim(t *testing.T) {
	state := types.AccumulatedState{UsedNumericClaims: []string{"30%"}}
	output := &types.StageOutput{Items: []types.StageItem{
		{Text: words("cut", 29) + " 30%", SourceID: "b1"},
		{Text: words("built", 30), SourceID: "b2"},
	}}

	issues := CheckStructure(output, bulletRules(), state)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], `repeats numeric claim "30%"`)
}

func TestCheckStructure_EmptyItem(t *testing.T) {
	rules := Rules{ItemLabel: "highlight"}
	output := &types.StageOutput{Items: []types.StageItem{{Text: "   ", SourceID: "h1"}}}

	issues := CheckStructure(output, rules, types.AccumulatedState{})
	require.NotEmpty(t, issues)
	assert.Contains(t, issues, "highlight-1 is empty")
}
