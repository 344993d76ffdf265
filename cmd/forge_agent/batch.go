package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-forge/internal/pipeline"
	"github.com/jonathan/resume-forge/internal/scoring"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run the pipeline for every job posting in a directory",
	Long:  "Runs the full pipeline once per .txt job posting found in a directory, with bounded concurrency. Runs are independent; one failed posting does not stop the others.",
	RunE:  runBatch,
}

var (
	batchJobsDir     string
	batchLibrary     string
	batchConcurrency int
	batchAPIKey      string
	batchDatabaseURL string
)

func init() {
	batchCmd.Flags().StringVarP(&batchJobsDir, "jobs-dir", "d", "", "Directory containing job posting .txt files (required)")
	batchCmd.Flags().StringVarP(&batchLibrary, "library", "l", "", "Path to content library JSON file (required)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 2, "Maximum concurrent pipeline runs")
	batchCmd.Flags().StringVar(&batchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	batchCmd.Flags().StringVar(&batchDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	if err := batchCmd.MarkFlagRequired("jobs-dir"); err != nil {
		panic(fmt.Sprintf("failed to mark jobs-dir flag as required: %v", err))
	}
	if err := batchCmd.MarkFlagRequired("library"); err != nil {
		panic(fmt.Sprintf("failed to mark library flag as required: %v", err))
	}

	rootCmd.AddCommand(batchCmd)
}

func runBatch(_ *cobra.Command, _ []string) error {
	apiKey := batchAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	databaseURL := batchDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}

	entries, err := os.ReadDir(batchJobsDir)
	if err != nil {
		return fmt.Errorf("failed to read jobs directory %s: %w", batchJobsDir, err)
	}

	var jobs []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		jobs = append(jobs, filepath.Join(batchJobsDir, entry.Name()))
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no .txt job postings found in %s", batchJobsDir)
	}

	fmt.Printf("Running pipeline for %d job postings (concurrency %d)...\n", len(jobs), batchConcurrency)

	start := time.Now()
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(batchConcurrency)

	failures := make([]error, len(jobs))
	for i, job := range jobs {
		g.Go(func() error {
			opts := pipeline.RunOptions{
				JobPath:     job,
				LibraryPath: batchLibrary,
				APIKey:      apiKey,
				Quotas:      scoring.DefaultQuotas(),
				MaxAttempts: pipeline.DefaultMaxAttempts,
				Timeout:     pipeline.DefaultRequestTimeout,
				DatabaseURL: databaseURL,
			}
			result, err := pipeline.RunForge(ctx, opts)
			if err != nil {
				failures[i] = fmt.Errorf("%s: %w", job, err)
				return nil // one failed posting must not cancel the others
			}
			if !result.Success {
				failures[i] = fmt.Errorf("%s: %s", job, result.FirstFatalError)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, failure := range failures {
		if failure != nil {
			failed++
			_, _ = fmt.Fprintf(os.Stderr, "Failed: %v\n", failure)
		}
	}

	fmt.Printf("Batch complete: %d succeeded, %d failed in %s\n", len(jobs)-failed, failed, time.Since(start).Round(time.Second))
	if failed > 0 {
		return fmt.Errorf("%d of %d runs failed", failed, len(jobs))
	}
	return nil
}
