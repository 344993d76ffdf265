package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/format"
	"github.com/jonathan/resume-forge/internal/ingest"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/observability"
	"github.com/jonathan/resume-forge/internal/scoring"
	"github.com/jonathan/resume-forge/internal/signals"
	"github.com/jonathan/resume-forge/internal/stages"
	"github.com/jonathan/resume-forge/internal/store"
	"github.com/jonathan/resume-forge/internal/types"
)

// RunOptions holds all configuration for a full end-to-end run.
type RunOptions struct {
	JobPath     string
	JobURL      string
	LibraryPath string
	APIKey      string
	Quotas      scoring.Quotas
	WordRanges  stages.WordRanges
	MaxAttempts int
	Timeout     time.Duration
	Pricing     Pricing
	UseBrowser  bool
	Verbose     bool
	DatabaseURL string
}

// RunForge executes the complete workflow: ingest the job posting, extract
// requirement signals, select content, run the generation stages, and format
// check the assembled resume. Database persistence is best-effort: a missing
// or unreachable database downgrades to warnings, never fails the run.
func RunForge(ctx context.Context, opts RunOptions) (*types.PipelineResult, error) {
	printer := observability.NewPrinter(os.Stdout)

	// Database connection is optional
	var database *db.DB
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
		}
	}

	// Step 1: Ingest job posting (from URL or file)
	var posting *ingest.Posting
	var err error
	if opts.JobURL != "" {
		fmt.Printf("Step 1/6: Ingesting job posting from URL: %s...\n", opts.JobURL)
		posting, err = ingest.FromURL(ctx, opts.JobURL, opts.UseBrowser)
	} else {
		fmt.Printf("Step 1/6: Ingesting job posting from file: %s...\n", opts.JobPath)
		posting, err = ingest.FromFile(opts.JobPath)
	}
	if err != nil {
		return nil, fmt.Errorf("job ingestion failed: %w", err)
	}

	// Step 2: Extract requirement signals
	fmt.Printf("Step 2/6: Extracting requirement signals...\n")
	gen, err := llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}
	defer func() { _ = gen.Close() }()

	sigs, err := signals.Extract(ctx, gen, posting.Text)
	if err != nil {
		return nil, fmt.Errorf("signal extraction failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintSignals(sigs)
	}

	// Create database run record
	var runID uuid.UUID
	if database != nil {
		runID, err = database.CreateRun(ctx, sigs.Company, sigs.RoleTitle, posting.Source)
		if err != nil {
			fmt.Printf("Warning: Failed to create database run: %v\n", err)
			database = nil
		} else if opts.Verbose {
			fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
		}
	}

	// Step 3: Load content library (JSON file, or the database when no file
	// path is given and a connection is available)
	var library store.Library
	if opts.LibraryPath == "" && database != nil {
		fmt.Printf("Step 3/6: Loading content library from database...\n")
		library = database.NewLibrary(ctx)
	} else {
		fmt.Printf("Step 3/6: Loading content library from %s...\n", opts.LibraryPath)
		library, err = store.OpenFileLibrary(opts.LibraryPath)
		if err != nil {
			return nil, err
		}
	}
	items, err := library.AllContentItems()
	if err != nil {
		return nil, err
	}
	table, err := library.ConflictTable()
	if err != nil {
		return nil, err
	}

	// Step 4: Score and select content
	fmt.Printf("Step 4/6: Scoring %d content items and building selection plan...\n", len(items))
	quotas := opts.Quotas
	if quotas.Highlights == 0 && len(quotas.RoleBullets) == 0 {
		quotas = scoring.DefaultQuotas()
	}
	plan := scoring.BuildPlan(items, table, sigs, quotas)
	for _, selErr := range plan.SelectionErrors() {
		fmt.Printf("Warning: %v\n", selErr)
	}
	if opts.Verbose {
		printer.PrintPlan(plan)
	}
	if database != nil {
		if err := database.SaveArtifact(ctx, runID, "selection_plan", plan); err != nil {
			fmt.Printf("Warning: Failed to save selection plan: %v\n", err)
		}
	}

	// Step 5: Run generation stages
	ranges := opts.WordRanges
	if (ranges == stages.WordRanges{}) {
		ranges = stages.DefaultWordRanges()
	}
	defs := stages.FromPlan(plan, ranges)
	fmt.Printf("Step 5/6: Running %d generation stages...\n", len(defs))

	runnerOpts := Options{
		MaxAttempts:    opts.MaxAttempts,
		RequestTimeout: opts.Timeout,
		Pricing:        opts.Pricing,
	}
	if database != nil {
		runnerOpts.RunID = runID
		runnerOpts.Sink = database.NewAttemptSink()
	} else if opts.Verbose {
		runnerOpts.Sink = &WriterSink{Out: os.Stdout}
	}

	runner := NewRunner(gen, runnerOpts)
	result, err := runner.Run(ctx, defs, sigs)
	if result != nil && opts.Verbose {
		for i := range result.PerStageResults {
			printer.PrintStageResult(&result.PerStageResults[i])
		}
	}
	if err != nil {
		completeRun(ctx, database, runID, result)
		return result, err
	}
	if !result.Success {
		fmt.Printf("Pipeline halted: %s\n", result.FirstFatalError)
		completeRun(ctx, database, runID, result)
		return result, nil
	}

	// Step 6: Format check the assembled resume
	fmt.Printf("Step 6/6: Running format check...\n")
	result.FormatReport = format.CheckResume(result.AssembledOutput)
	printer.PrintFormatReport(result.FormatReport)

	if database != nil {
		if err := database.SaveArtifact(ctx, runID, "assembled_resume", result.AssembledOutput); err != nil {
			fmt.Printf("Warning: Failed to save assembled resume: %v\n", err)
		}
		if err := database.SaveArtifact(ctx, runID, "format_report", result.FormatReport); err != nil {
			fmt.Printf("Warning: Failed to save format report: %v\n", err)
		}
	}
	completeRun(ctx, database, runID, result)

	printer.PrintRunSummary(result)
	return result, nil
}

func completeRun(ctx context.Context, database *db.DB, runID uuid.UUID, result *types.PipelineResult) {
	if database == nil {
		return
	}
	status := "failed"
	totalCost := 0.0
	if result != nil {
		totalCost = result.TotalCost
		if result.Success {
			status = "completed"
		}
	}
	if err := database.CompleteRun(ctx, runID, status, totalCost); err != nil {
		fmt.Printf("Warning: Failed to complete database run: %v\n", err)
	}
}
