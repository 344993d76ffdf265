package types

import "sort"

// AccumulatedState is the running, deduplicated record of what prior stages
// have already used. It starts empty, grows monotonically as stages succeed,
// and is discarded at run end. Values are updated functionally: Merge returns a
// new state and never modifies the receiver, so a snapshot handed to a stage
// can never be corrupted by a later merge.
type AccumulatedState struct {
	UsedBaseIDs       []string `json:"used_base_ids"`
	UsedLeadingVerbs  []string `json:"used_leading_verbs"`
	UsedNumericClaims []string `json:"used_numeric_claims"`
	UsedJDPhrases     []string `json:"used_jd_phrases"`
}

// StateDelta is the "state for downstream" block a stage declares on success.
// It is the sole channel through which constraints propagate between stages.
type StateDelta struct {
	BaseIDs       []string `json:"base_ids"`
	LeadingVerbs  []string `json:"leading_verbs"`
	NumericClaims []string `json:"numeric_claims"`
	JDPhrases     []string `json:"jd_phrases"`
}

// Merge returns a new AccumulatedState containing the union of the receiver
// and the delta. Existing entries are never removed, and set semantics hold
// even when a delta redeclares an entry already present.
func (s AccumulatedState) Merge(delta StateDelta) AccumulatedState {
	return AccumulatedState{
		UsedBaseIDs:       unionSorted(s.UsedBaseIDs, delta.BaseIDs),
		UsedLeadingVerbs:  unionSorted(s.UsedLeadingVerbs, delta.LeadingVerbs),
		UsedNumericClaims: unionSorted(s.UsedNumericClaims, delta.NumericClaims),
		UsedJDPhrases:     unionSorted(s.UsedJDPhrases, delta.JDPhrases),
	}
}

// HasBaseID reports whether a base item ID has already been consumed.
func (s AccumulatedState) HasBaseID(id string) bool {
	return containsString(s.UsedBaseIDs, id)
}

// HasLeadingVerb reports whether a leading verb has already been used.
func (s AccumulatedState) HasLeadingVerb(verb string) bool {
	return containsString(s.UsedLeadingVerbs, verb)
}

// HasNumericClaim reports whether a numeric claim has already been stated.
func (s AccumulatedState) HasNumericClaim(claim string) bool {
	return containsString(s.UsedNumericClaims, claim)
}

func unionSorted(existing, added []string) []string {
	seen := make(map[string]bool, len(existing)+len(added))
	merged := make([]string, 0, len(existing)+len(added))
	for _, lists := range [][]string{existing, added} {
		for _, v := range lists {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			merged = append(merged, v)
		}
	}
	sort.Strings(merged)
	return merged
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
