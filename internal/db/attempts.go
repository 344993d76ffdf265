package db

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/types"
)

// AttemptSink persists per-attempt stage diagnostics. It satisfies
// pipeline.Sink. Persistence failures are logged, never propagated: losing a
// diagnostic row must not fail a run.
type AttemptSink struct {
	db *DB
}

// NewAttemptSink creates a sink that records stage attempts in the database.
func (db *DB) NewAttemptSink() *AttemptSink {
	return &AttemptSink{db: db}
}

// RecordAttempt inserts one stage attempt row.
func (s *AttemptSink) RecordAttempt(ctx context.Context, runID uuid.UUID, rec types.AttemptRecord) {
	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO stage_attempts (run_id, stage, attempt, status, tokens_in, tokens_out, cost_estimate, duration_ms, issues)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		runID, rec.Stage, rec.Attempt, rec.Status,
		rec.TokensIn, rec.TokensOut, rec.CostEstimate, rec.DurationMs, rec.Issues,
	)
	if err != nil {
		log.Printf("failed to record stage attempt %s/%d: %v", rec.Stage, rec.Attempt, err)
	}
}
