// Package stages defines the ordered generation stages of the resume pipeline:
// what each stage asks for, how its structured response is parsed, and what
// constraints it declares for the stages after it.
package stages

import (
	"fmt"
	"sort"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/scoring"
	"github.com/jonathan/resume-forge/internal/types"
	"github.com/jonathan/resume-forge/internal/validation"
)

// Stage names, in pipeline order.
const (
	StageSummary     = "summary"
	StageHighlights  = "highlights"
	StageOverview    = "overview"
	stageRoleBullets = "role-%d-bullets"
)

// RoleBulletsStage returns the stage name for one role's bullet stage.
func RoleBulletsStage(slot int) string {
	return fmt.Sprintf(stageRoleBullets, slot)
}

// Definition describes one pipeline stage: its structural contract, its
// candidate source content, and its generation parameters.
type Definition struct {
	Name            string
	Category        types.Category
	PositionSlot    int
	Rules           validation.Rules
	Candidates      []types.ScoredCandidate
	MaxOutputTokens int
	Temperature     float32
	Tier            llm.ModelTier
}

// WordRanges configures the per-field word-count contracts. The zero value is
// replaced by DefaultWordRanges.
type WordRanges struct {
	Summary   validation.WordRange `json:"summary"`
	Highlight validation.WordRange `json:"highlight"`
	Bullet    validation.WordRange `json:"bullet"`
	Overview  validation.WordRange `json:"overview"`
}

// DefaultWordRanges returns the standard word-count contracts.
func DefaultWordRanges() WordRanges {
	return WordRanges{
		Summary:   validation.WordRange{Min: 140, Max: 160},
		Highlight: validation.WordRange{Min: 8, Max: 20},
		Bullet:    validation.WordRange{Min: 25, Max: 40},
		Overview:  validation.WordRange{Min: 40, Max: 60},
	}
}

// FromPlan builds the ordered stage list for a selection plan. Stages whose
// category came up empty in selection are skipped; the caller decides whether
// an empty category is acceptable for the run.
func FromPlan(plan *scoring.Plan, ranges WordRanges) []Definition {
	var defs []Definition

	if plan.Summary != nil {
		defs = append(defs, Definition{
			Name:     StageSummary,
			Category: types.CategorySummary,
			Rules: validation.Rules{
				RequiredCount: 1,
				ItemWords:     ranges.Summary,
				ItemLabel:     "summary",
			},
			Candidates:      []types.ScoredCandidate{*plan.Summary},
			MaxOutputTokens: 1024,
			Temperature:     0.3,
			Tier:            llm.TierAdvanced,
		})
	}

	if len(plan.Highlights) > 0 {
		defs = append(defs, Definition{
			Name:     StageHighlights,
			Category: types.CategoryHighlight,
			Rules: validation.Rules{
				RequiredCount:        len(plan.Highlights),
				ItemWords:            ranges.Highlight,
				ItemLabel:            "highlight",
				DistinctLeadingVerbs: true,
			},
			Candidates:      plan.Highlights,
			MaxOutputTokens: 1024,
			Temperature:     0.3,
			Tier:            llm.TierAdvanced,
		})
	}

	for _, slot := range roleSlots(plan) {
		candidates := plan.RoleBullets[slot]
		if len(candidates) == 0 {
			continue
		}
		defs = append(defs, Definition{
			Name:         RoleBulletsStage(slot),
			Category:     types.CategoryBullet,
			PositionSlot: slot,
			Rules: validation.Rules{
				RequiredCount:        len(candidates),
				ItemWords:            ranges.Bullet,
				ItemLabel:            "bullet",
				DistinctLeadingVerbs: true,
			},
			Candidates:      candidates,
			MaxOutputTokens: 2048,
			Temperature:     0.3,
			Tier:            llm.TierAdvanced,
		})
	}

	if plan.Overview != nil {
		defs = append(defs, Definition{
			Name:     StageOverview,
			Category: types.CategoryOverview,
			Rules: validation.Rules{
				RequiredCount: 1,
				ItemWords:     ranges.Overview,
				ItemLabel:     "overview",
			},
			Candidates:      []types.ScoredCandidate{*plan.Overview},
			MaxOutputTokens: 512,
			Temperature:     0.3,
			Tier:            llm.TierStandard,
		})
	}

	return defs
}

func roleSlots(plan *scoring.Plan) []int {
	slots := make([]int, 0, len(plan.RoleBullets))
	for slot := range plan.RoleBullets {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	return slots
}

// Delta computes the full downstream state contribution of a succeeded stage:
// the delta the stage declared, unioned with the source IDs, leading verbs,
// and numeric claims observable in its items. The derived part guards against
// a model under-declaring its own output.
func Delta(output *types.StageOutput) types.StateDelta {
	delta := output.StateForDownstream
	for _, item := range output.Items {
		if item.SourceID != "" {
			delta.BaseIDs = append(delta.BaseIDs, item.SourceID)
		}
		if verb := validation.LeadingVerb(item.Text); verb != "" {
			delta.LeadingVerbs = append(delta.LeadingVerbs, verb)
		}
		delta.NumericClaims = append(delta.NumericClaims, validation.NumericClaims(item.Text)...)
		if item.JDPhrase != "" {
			delta.JDPhrases = append(delta.JDPhrases, item.JDPhrase)
		}
	}
	return delta
}
