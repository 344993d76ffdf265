package types

// StageStatus is the terminal status of a single pipeline stage.
type StageStatus string

// Terminal stage statuses. A stage that succeeds on its first attempt reports
// "success"; one that succeeds after corrective retries reports "retry".
const (
	StageSuccess StageStatus = "success"
	StageRetry   StageStatus = "retry"
	StageFailed  StageStatus = "failed"
)

// TokenUsage holds token counts reported by the generation service for one request.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// StageItem is one generated content element along with the job-description
// phrase it addresses and the library item it was sourced from.
type StageItem struct {
	Text     string `json:"text" validate:"required"`
	SourceID string `json:"source_id" validate:"required"`
	JDPhrase string `json:"jd_phrase"`
}

// StageOutput is the structured record parsed from a generation response.
type StageOutput struct {
	Items              []StageItem `json:"items" validate:"required,min=1,dive"`
	StateForDownstream StateDelta  `json:"state_for_downstream"`
}

// StageResult records the outcome of one stage for one run. It is immutable
// once the stage completes.
type StageResult struct {
	StageName        string       `json:"stage_name"`
	Status           StageStatus  `json:"status"`
	Attempts         int          `json:"attempts"`
	ParsedOutput     *StageOutput `json:"parsed_output,omitempty"`
	ValidationIssues []string     `json:"validation_issues,omitempty"`
	TokensIn         int          `json:"tokens_in"`
	TokensOut        int          `json:"tokens_out"`
	CostEstimate     float64      `json:"cost_estimate"`
	DurationMs       int64        `json:"duration_ms"`
}

// RoleDetail groups the generated bullets for one prior role.
type RoleDetail struct {
	PositionSlot int      `json:"position_slot"`
	Bullets      []string `json:"bullets"`
}

// AssembledResume is the fully assembled narrative and detail output of a
// successful run.
type AssembledResume struct {
	Summary    string       `json:"summary"`
	Highlights []string     `json:"highlights"`
	Roles      []RoleDetail `json:"roles"`
	Overview   string       `json:"overview"`
}

// PipelineResult is the single success/failure result returned for a run.
type PipelineResult struct {
	Success         bool             `json:"success"`
	PerStageResults []StageResult    `json:"per_stage_results"`
	AssembledOutput *AssembledResume `json:"assembled_output,omitempty"`
	FormatReport    *FormatReport    `json:"format_report,omitempty"`
	TotalCost       float64          `json:"total_cost"`
	TotalDurationMs int64            `json:"total_duration_ms"`
	FirstFatalError string           `json:"first_fatal_error,omitempty"`
}
