package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/types"
)

// Sink receives per-attempt diagnostics. Implementations must tolerate being
// called from a single run goroutine only; the orchestrator never emits
// concurrently within one run.
type Sink interface {
	RecordAttempt(ctx context.Context, runID uuid.UUID, rec types.AttemptRecord)
}

// WriterSink logs attempt records to an io.Writer, one line per attempt.
type WriterSink struct {
	Out io.Writer
}

// RecordAttempt writes a single human-readable diagnostic line.
func (s *WriterSink) RecordAttempt(_ context.Context, runID uuid.UUID, rec types.AttemptRecord) {
	line := fmt.Sprintf("[%s] stage=%s attempt=%d status=%s tokens=%d/%d cost=$%.4f duration=%dms",
		runID, rec.Stage, rec.Attempt, rec.Status, rec.TokensIn, rec.TokensOut, rec.CostEstimate, rec.DurationMs)
	if len(rec.Issues) > 0 {
		line += " issues: " + strings.Join(rec.Issues, "; ")
	}
	_, _ = fmt.Fprintln(s.Out, line)
}

// nopSink discards diagnostics when no sink is configured.
type nopSink struct{}

func (nopSink) RecordAttempt(context.Context, uuid.UUID, types.AttemptRecord) {}
