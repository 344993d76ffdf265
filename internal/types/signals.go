package types

// RequirementSignals holds the normalized requirement signals extracted once per
// run from a job description. Immutable for the duration of the run.
type RequirementSignals struct {
	Company    string   `json:"company,omitempty"`
	RoleTitle  string   `json:"role_title,omitempty"`
	Industries []string `json:"industries"`
	Functions  []string `json:"functions"`
	Themes     []string `json:"themes"`
	Keywords   []string `json:"keywords"`
}

// ScoredCandidate is produced fresh on every scoring pass and never mutated
// after creation.
type ScoredCandidate struct {
	ItemID            string `json:"item_id"`
	BaseID            string `json:"base_id"`
	SelectedVariantID string `json:"selected_variant_id,omitempty"`
	IndustryScore     int    `json:"industry_score"`
	FunctionScore     int    `json:"function_score"`
	ThemeScore        int    `json:"theme_score"`
	TotalScore        int    `json:"total_score"`
	Text              string `json:"text"` // resolved phrasing (variant text if one was selected)
}
