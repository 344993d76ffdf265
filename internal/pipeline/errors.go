// Package pipeline orchestrates the ordered generation stages of a resume run.
package pipeline

import (
	"fmt"
	"strings"
)

// RetriesExhaustedError is fatal for the run: a stage failed validation on
// every allowed attempt. The whole pipeline halts and no partial resume is
// assembled.
type RetriesExhaustedError struct {
	Stage    string
	Attempts int
	Issues   []string
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("stage %s failed after %d attempts: %s",
		e.Stage, e.Attempts, strings.Join(e.Issues, "; "))
}

// UpstreamStateMissingError reports that a stage was about to run although a
// predecessor never succeeded. The halt-on-failure rule makes this
// unreachable in practice; the orchestrator still checks it.
type UpstreamStateMissingError struct {
	Stage       string
	Predecessor string
}

func (e *UpstreamStateMissingError) Error() string {
	return fmt.Sprintf("stage %s requires state from predecessor %s, which never succeeded",
		e.Stage, e.Predecessor)
}
