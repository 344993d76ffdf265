package stages

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-forge/internal/prompts"
	"github.com/jonathan/resume-forge/internal/types"
)

// BuildPrompt assembles the request payload for one stage attempt: the job
// signals, the stage's candidate source content, the accumulated "do not
// reuse" constraints, and, on retries, the prior attempt's validation issues
// as explicit corrective instructions.
func BuildPrompt(def Definition, signals *types.RequirementSignals, state types.AccumulatedState, priorIssues []string) string {
	var sb strings.Builder

	intro := prompts.MustGet("stages.json", "stage-intro")
	sb.WriteString(prompts.Format(intro, map[string]string{
		"StageName":  def.Name,
		"RoleTitle":  signals.RoleTitle,
		"Company":    signals.Company,
		"Industries": joinOrNone(signals.Industries),
		"Functions":  joinOrNone(signals.Functions),
		"Themes":     joinOrNone(signals.Themes),
		"Keywords":   joinOrNone(signals.Keywords),
	}))
	sb.WriteString("\n")

	candidates := prompts.MustGet("stages.json", "stage-candidates")
	sb.WriteString(prompts.Format(candidates, map[string]string{
		"Candidates": formatCandidates(def.Candidates),
	}))
	sb.WriteString("\n")

	constraints := prompts.MustGet("stages.json", "stage-constraints")
	sb.WriteString(prompts.Format(constraints, map[string]string{
		"BannedIDs":     joinOrNone(state.UsedBaseIDs),
		"BannedVerbs":   joinOrNone(state.UsedLeadingVerbs),
		"BannedClaims":  joinOrNone(state.UsedNumericClaims),
		"BannedPhrases": joinOrNone(state.UsedJDPhrases),
	}))
	sb.WriteString("\n")

	if len(priorIssues) > 0 {
		feedback := prompts.MustGet("stages.json", "stage-feedback")
		sb.WriteString(prompts.Format(feedback, map[string]string{
			"Issues": "- " + strings.Join(priorIssues, "\n- "),
		}))
		sb.WriteString("\n")
	}

	requirements := prompts.MustGet("stages.json", "stage-requirements")
	sb.WriteString(prompts.Format(requirements, map[string]string{
		"RequiredCount": fmt.Sprintf("%d", def.Rules.RequiredCount),
		"ItemLabel":     def.Rules.ItemLabel,
		"MinWords":      fmt.Sprintf("%d", def.Rules.ItemWords.Min),
		"MaxWords":      fmt.Sprintf("%d", def.Rules.ItemWords.Max),
	}))

	return sb.String()
}

func formatCandidates(candidates []types.ScoredCandidate) string {
	lines := make([]string, 0, len(candidates))
	for _, c := range candidates {
		lines = append(lines, fmt.Sprintf("%s | %s", c.BaseID, c.Text))
	}
	return strings.Join(lines, "\n")
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}
