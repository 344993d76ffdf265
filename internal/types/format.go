package types

// FormatSeverity classifies a format-checker finding.
type FormatSeverity string

// Format issue severities.
const (
	SeverityBlocker    FormatSeverity = "blocker"
	SeverityWarning    FormatSeverity = "warning"
	SeveritySuggestion FormatSeverity = "suggestion"
)

// FormatIssue is a single finding from the format checker.
type FormatIssue struct {
	Severity FormatSeverity `json:"severity"`
	Category string         `json:"category"`
	Details  string         `json:"details"`
}

// FormatReport is the deterministic result of the cross-cutting format check
// over a fully assembled resume. The checker only reports; it never retries
// and never calls the generation service.
type FormatReport struct {
	Score  float64       `json:"score"` // starts at 10, fixed capped deductions per category
	Issues []FormatIssue `json:"issues"`
}
