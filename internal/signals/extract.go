package signals

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/prompts"
	"github.com/jonathan/resume-forge/internal/types"
)

// Extract derives RequirementSignals from raw job posting text using the
// generation service. Extraction happens exactly once per run; the returned
// signals are treated as immutable afterwards.
func Extract(ctx context.Context, gen llm.Generator, jobText string) (*types.RequirementSignals, error) {
	if strings.TrimSpace(jobText) == "" {
		return nil, &ParseError{Message: "job text is empty"}
	}

	template, err := prompts.Get("signals.json", "extract-signals")
	if err != nil {
		return nil, &ParseError{Message: "failed to load extraction prompt", Cause: err}
	}
	prompt := prompts.Format(template, map[string]string{"JobText": jobText})

	resp, err := gen.Generate(ctx, llm.Request{
		Prompt:          prompt,
		MaxOutputTokens: 2048,
		Temperature:     0.1,
		Tier:            llm.TierLite,
	})
	if err != nil {
		return nil, &APICallError{Message: "signal extraction request failed", Cause: err}
	}

	var extracted types.RequirementSignals
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(resp.Text)), &extracted); err != nil {
		return nil, &ParseError{Message: "failed to parse extraction response", Cause: err}
	}

	normalized := Normalize(&extracted)
	if len(normalized.Industries) == 0 && len(normalized.Functions) == 0 && len(normalized.Themes) == 0 {
		return nil, &ParseError{Message: "extraction produced no industry, function, or theme signals"}
	}

	return normalized, nil
}

// Normalize lowercases, trims, and deduplicates every tag list so downstream
// scoring compares like with like. Tag order within each list is sorted.
func Normalize(raw *types.RequirementSignals) *types.RequirementSignals {
	return &types.RequirementSignals{
		Company:    strings.TrimSpace(raw.Company),
		RoleTitle:  strings.TrimSpace(raw.RoleTitle),
		Industries: normalizeTags(raw.Industries),
		Functions:  normalizeTags(raw.Functions),
		Themes:     normalizeTags(raw.Themes),
		Keywords:   normalizeTags(raw.Keywords),
	}
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	sort.Strings(out)
	return out
}
