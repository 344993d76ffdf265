package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/stages"
	"github.com/jonathan/resume-forge/internal/types"
	"github.com/jonathan/resume-forge/internal/validation"
)

// DefaultMaxAttempts bounds the retry-with-feedback loop per stage.
const DefaultMaxAttempts = 3

// DefaultRequestTimeout bounds one generation request. A timed-out request is
// counted as a failed attempt, not as a fatal error.
const DefaultRequestTimeout = 2 * time.Minute

// Pricing converts token counts into cost estimates, in dollars per million
// tokens.
type Pricing struct {
	InputPerMTok  float64 `json:"input_per_mtok"`
	OutputPerMTok float64 `json:"output_per_mtok"`
}

// Cost estimates the dollar cost of one request.
func (p Pricing) Cost(tokensIn, tokensOut int) float64 {
	return float64(tokensIn)*p.InputPerMTok/1e6 + float64(tokensOut)*p.OutputPerMTok/1e6
}

// Options configures a Runner. RunID, when set, identifies every attempt
// recorded by the Sink; callers persisting runs pass the same ID they created
// the run record with. When zero, each Run call gets a fresh ID.
type Options struct {
	RunID          uuid.UUID
	MaxAttempts    int
	RequestTimeout time.Duration
	Pricing        Pricing
	Sink           Sink
}

// Runner executes the ordered stage list for one or more runs. A Runner holds
// no per-run state: AccumulatedState is scoped to each Run call, so
// independent runs may execute concurrently on the same Runner.
type Runner struct {
	gen  llm.Generator
	opts Options
}

// NewRunner creates a Runner over a generation client.
func NewRunner(gen llm.Generator, opts Options) *Runner {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.Sink == nil {
		opts.Sink = nopSink{}
	}
	return &Runner{gen: gen, opts: opts}
}

// Run executes every stage strictly in order. Each stage reads a snapshot of
// the state accumulated by its predecessors, and the orchestrator merges a
// stage's declared downstream state only after the stage succeeds, so the
// state passed into stage k is exactly the union of stages 1..k-1. The first
// stage to exhaust its retries fails the whole run: no downstream stage
// executes and no partial resume is assembled.
func (r *Runner) Run(ctx context.Context, defs []stages.Definition, signals *types.RequirementSignals) (*types.PipelineResult, error) {
	runID := r.opts.RunID
	if runID == uuid.Nil {
		runID = uuid.New()
	}
	runStart := time.Now()

	result := &types.PipelineResult{}
	state := types.AccumulatedState{}
	succeeded := make(map[string]bool, len(defs))

	for i, def := range defs {
		// The halt-on-failure rule below makes a missing predecessor
		// unreachable; verify anyway.
		if i > 0 && !succeeded[defs[i-1].Name] {
			err := &UpstreamStateMissingError{Stage: def.Name, Predecessor: defs[i-1].Name}
			result.Success = false
			result.FirstFatalError = err.Error()
			result.TotalDurationMs = time.Since(runStart).Milliseconds()
			return result, err
		}

		stageResult, err := r.runStage(ctx, runID, def, signals, state)
		result.PerStageResults = append(result.PerStageResults, *stageResult)
		result.TotalCost += stageResult.CostEstimate
		if err != nil {
			result.Success = false
			result.FirstFatalError = err.Error()
			result.TotalDurationMs = time.Since(runStart).Milliseconds()
			var exhausted *RetriesExhaustedError
			if errors.As(err, &exhausted) {
				// Retries exhausted is the run's failure outcome, already
				// captured in the result; don't double-report it.
				return result, nil
			}
			return result, err
		}

		state = state.Merge(stages.Delta(stageResult.ParsedOutput))
		succeeded[def.Name] = true
	}

	result.Success = true
	result.AssembledOutput = assemble(defs, result.PerStageResults)
	result.TotalDurationMs = time.Since(runStart).Milliseconds()
	return result, nil
}

// runStage drives the bounded retry-with-feedback loop for one stage.
func (r *Runner) runStage(ctx context.Context, runID uuid.UUID, def stages.Definition, signals *types.RequirementSignals, state types.AccumulatedState) (*types.StageResult, error) {
	stageResult := &types.StageResult{StageName: def.Name}
	stageStart := time.Now()

	var priorIssues []string

	for attempt := 1; attempt <= r.opts.MaxAttempts; attempt++ {
		// Cancellation is checked before every attempt, not just every stage.
		if err := ctx.Err(); err != nil {
			stageResult.Status = types.StageFailed
			stageResult.Attempts = attempt - 1
			stageResult.ValidationIssues = priorIssues
			stageResult.DurationMs = time.Since(stageStart).Milliseconds()
			return stageResult, fmt.Errorf("run cancelled before stage %s attempt %d: %w", def.Name, attempt, err)
		}

		stageResult.Attempts = attempt
		issues, output, usage, elapsed := r.attempt(ctx, def, signals, state, priorIssues)
		stageResult.TokensIn += usage.InputTokens
		stageResult.TokensOut += usage.OutputTokens
		cost := r.opts.Pricing.Cost(usage.InputTokens, usage.OutputTokens)
		stageResult.CostEstimate += cost

		if len(issues) == 0 {
			stageResult.ParsedOutput = output
			stageResult.Status = types.StageSuccess
			if attempt > 1 {
				stageResult.Status = types.StageRetry
			}
			stageResult.DurationMs = time.Since(stageStart).Milliseconds()
			r.opts.Sink.RecordAttempt(ctx, runID, types.AttemptRecord{
				Stage: def.Name, Attempt: attempt, Status: "succeeded",
				TokensIn: usage.InputTokens, TokensOut: usage.OutputTokens,
				CostEstimate: cost, DurationMs: elapsed.Milliseconds(),
			})
			return stageResult, nil
		}

		status := "retrying"
		if attempt == r.opts.MaxAttempts {
			status = "failed"
		}
		r.opts.Sink.RecordAttempt(ctx, runID, types.AttemptRecord{
			Stage: def.Name, Attempt: attempt, Status: status,
			TokensIn: usage.InputTokens, TokensOut: usage.OutputTokens,
			CostEstimate: cost, DurationMs: elapsed.Milliseconds(),
			Issues: issues,
		})
		priorIssues = issues
	}

	stageResult.Status = types.StageFailed
	stageResult.ValidationIssues = priorIssues
	stageResult.DurationMs = time.Since(stageStart).Milliseconds()
	return stageResult, &RetriesExhaustedError{
		Stage:    def.Name,
		Attempts: r.opts.MaxAttempts,
		Issues:   priorIssues,
	}
}

// attempt performs one generate/parse/validate cycle. All failure modes,
// including request errors and timeouts, are reported as retryable issues.
func (r *Runner) attempt(ctx context.Context, def stages.Definition, signals *types.RequirementSignals, state types.AccumulatedState, priorIssues []string) ([]string, *types.StageOutput, llm.Result, time.Duration) {
	prompt := stages.BuildPrompt(def, signals, state, priorIssues)

	reqCtx, cancel := context.WithTimeout(ctx, r.opts.RequestTimeout)
	defer cancel()

	start := time.Now()
	resp, err := r.gen.Generate(reqCtx, llm.Request{
		Prompt:          prompt,
		MaxOutputTokens: def.MaxOutputTokens,
		Temperature:     def.Temperature,
		Tier:            def.Tier,
	})
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return []string{fmt.Sprintf("generation request timed out after %s", r.opts.RequestTimeout)}, nil, llm.Result{}, elapsed
		}
		return []string{fmt.Sprintf("generation request failed: %v", err)}, nil, llm.Result{}, elapsed
	}

	output, parseIssues := stages.ParseOutput(resp.Text)
	if len(parseIssues) > 0 {
		return parseIssues, nil, *resp, elapsed
	}

	if issues := validation.CheckStructure(output, def.Rules, state); len(issues) > 0 {
		return issues, nil, *resp, elapsed
	}

	return nil, output, *resp, elapsed
}

// assemble builds the final resume from the succeeded stages' outputs.
func assemble(defs []stages.Definition, results []types.StageResult) *types.AssembledResume {
	outputs := make(map[string]*types.StageOutput, len(results))
	for i := range results {
		outputs[results[i].StageName] = results[i].ParsedOutput
	}

	resume := &types.AssembledResume{}
	for _, def := range defs {
		output := outputs[def.Name]
		if output == nil {
			continue
		}
		texts := make([]string, 0, len(output.Items))
		for _, item := range output.Items {
			texts = append(texts, item.Text)
		}
		switch def.Category {
		case types.CategorySummary:
			resume.Summary = texts[0]
		case types.CategoryHighlight:
			resume.Highlights = texts
		case types.CategoryBullet:
			resume.Roles = append(resume.Roles, types.RoleDetail{
				PositionSlot: def.PositionSlot,
				Bullets:      texts,
			})
		case types.CategoryOverview:
			resume.Overview = texts[0]
		}
	}
	return resume
}
