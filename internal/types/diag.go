package types

// AttemptRecord is one diagnostic record, emitted once per stage attempt.
// How (and whether) records are persisted is up to the consuming sink.
type AttemptRecord struct {
	Stage        string   `json:"stage"`
	Attempt      int      `json:"attempt"`
	Status       string   `json:"status"` // succeeded | retrying | failed
	TokensIn     int      `json:"tokens_in"`
	TokensOut    int      `json:"tokens_out"`
	CostEstimate float64  `json:"cost_estimate"`
	DurationMs   int64    `json:"duration_ms"`
	Issues       []string `json:"issues,omitempty"`
}
