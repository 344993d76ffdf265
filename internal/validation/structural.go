package validation

import (
	"fmt"

	"github.com/jonathan/resume-forge/internal/types"
)

// WordRange is an inclusive word-count range for one content field.
type WordRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether a word count falls inside the range. A zero-value
// range accepts any count.
func (r WordRange) Contains(words int) bool {
	if r.Min == 0 && r.Max == 0 {
		return true
	}
	return words >= r.Min && words <= r.Max
}

// Rules describes the structural contract one stage's output must satisfy.
type Rules struct {
	// RequiredCount is the exact number of items the stage must produce.
	RequiredCount int
	// ItemWords is the word-count range each item must fall into.
	ItemWords WordRange
	// ItemLabel names the item kind in issue strings ("bullet", "highlight", ...).
	ItemLabel string
	// DistinctLeadingVerbs requires each item to start with a different verb.
	DistinctLeadingVerbs bool
}

// CheckStructure validates a parsed stage output against its rules and the
// state accumulated by prior stages. It is a pure function: every violation
// becomes a human-readable issue string and all issues are retryable.
func CheckStructure(output *types.StageOutput, rules Rules, state types.AccumulatedState) []string {
	var issues []string

	if rules.RequiredCount > 0 && len(output.Items) != rules.RequiredCount {
		issues = append(issues, fmt.Sprintf("expected exactly %d %ss, got %d",
			rules.RequiredCount, rules.ItemLabel, len(output.Items)))
	}

	seenVerbs := make(map[string]int)
	for i, item := range output.Items {
		label := fmt.Sprintf("%s-%d", rules.ItemLabel, i+1)

		words := CountWords(item.Text)
		if !rules.ItemWords.Contains(words) {
			issues = append(issues, fmt.Sprintf("%s has %d words, expected %d-%d",
				label, words, rules.ItemWords.Min, rules.ItemWords.Max))
		}

		verb := LeadingVerb(item.Text)
		if verb == "" {
			issues = append(issues, fmt.Sprintf("%s is empty", label))
			continue
		}
		if rules.DistinctLeadingVerbs {
			if prior, ok := seenVerbs[verb]; ok {
				issues = append(issues, fmt.Sprintf("%s repeats leading verb %q already used by %s-%d",
					label, verb, rules.ItemLabel, prior))
			} else {
				seenVerbs[verb] = i + 1
			}
		}

		issues = append(issues, checkAgainstState(label, item, state)...)
	}

	return issues
}

// checkAgainstState flags reuse of source items, leading verbs, and numeric
// claims that earlier stages have already consumed.
func checkAgainstState(label string, item types.StageItem, state types.AccumulatedState) []string {
	var issues []string

	if item.SourceID != "" && state.HasBaseID(item.SourceID) {
		issues = append(issues, fmt.Sprintf("%s reuses source item %s already consumed by an earlier stage",
			label, item.SourceID))
	}

	if verb := LeadingVerb(item.Text); verb != "" && state.HasLeadingVerb(verb) {
		issues = append(issues, fmt.Sprintf("%s starts with verb %q already used by an earlier stage",
			label, verb))
	}

	for _, claim := range NumericClaims(item.Text) {
		if state.HasNumericClaim(claim) {
			issues = append(issues, fmt.Sprintf("%s repeats numeric claim %q already stated by an earlier stage",
				label, claim))
		}
	}

	return issues
}
