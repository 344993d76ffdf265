package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/pipeline"
	"github.com/jonathan/resume-forge/internal/scoring"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full resume generation pipeline end-to-end",
	Long: `Orchestrates the entire generation process: ingestion -> signal extraction -> scoring and selection -> generation stages -> format check.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath   string
	runJob          string
	runJobURL       string
	runLibrary      string
	runMaxAttempts  int
	runTimeoutSecs  int
	runHighlights   int
	runRole1Bullets int
	runRole2Bullets int
	runAPIKey       string
	runUseBrowser   bool
	runVerbose      bool
	runDatabaseURL  string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	runCommand.Flags().StringVar(&runJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	runCommand.Flags().StringVarP(&runLibrary, "library", "l", "", "Path to content library JSON file")
	runCommand.Flags().IntVar(&runMaxAttempts, "max-attempts", 0, "Maximum generation attempts per stage")
	runCommand.Flags().IntVar(&runTimeoutSecs, "request-timeout", 0, "Per-request timeout in seconds")
	runCommand.Flags().IntVar(&runHighlights, "highlights", 0, "Number of highlights to select")
	runCommand.Flags().IntVar(&runRole1Bullets, "role1-bullets", 0, "Number of bullets for the most recent role")
	runCommand.Flags().IntVar(&runRole2Bullets, "role2-bullets", 0, "Number of bullets for the prior role")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for artifact persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("job") {
		cfg.Job = runJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = runJobURL
	}
	if cmd.Flags().Changed("library") {
		cfg.Library = runLibrary
	}
	if cmd.Flags().Changed("max-attempts") {
		cfg.MaxAttempts = runMaxAttempts
	}
	if cmd.Flags().Changed("request-timeout") {
		cfg.RequestTimeoutSecs = runTimeoutSecs
	}
	if cmd.Flags().Changed("highlights") {
		cfg.HighlightCount = runHighlights
	}
	if cmd.Flags().Changed("role1-bullets") {
		cfg.Role1BulletCount = runRole1Bullets
	}
	if cmd.Flags().Changed("role2-bullets") {
		cfg.Role2BulletCount = runRole2Bullets
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}

	// Step 3: Apply defaults for unset values
	quotas := scoring.DefaultQuotas()
	defaults := config.Config{
		MaxAttempts:        pipeline.DefaultMaxAttempts,
		RequestTimeoutSecs: int(pipeline.DefaultRequestTimeout.Seconds()),
		HighlightCount:     quotas.Highlights,
		Role1BulletCount:   quotas.RoleBullets[1],
		Role2BulletCount:   quotas.RoleBullets[2],
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	// Step 5: API key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	// Step 6: Database URL is optional; persistence downgrades to warnings
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	// With no library file and no database to read content from, fall back to
	// the conventional file name. An empty library path with a database URL
	// means the content library is read from PostgreSQL.
	if cfg.Library == "" && cfg.DatabaseURL == "" {
		cfg.Library = "library.json"
	}

	opts := pipeline.RunOptions{
		JobPath:     cfg.Job,
		JobURL:      cfg.JobURL,
		LibraryPath: cfg.Library,
		APIKey:      cfg.APIKey,
		Quotas: scoring.Quotas{
			Highlights:  cfg.HighlightCount,
			RoleBullets: map[int]int{1: cfg.Role1BulletCount, 2: cfg.Role2BulletCount},
		},
		MaxAttempts: cfg.MaxAttempts,
		Timeout:     time.Duration(cfg.RequestTimeoutSecs) * time.Second,
		Pricing:     pipeline.Pricing{InputPerMTok: cfg.InputPerMTok, OutputPerMTok: cfg.OutputPerMTok},
		UseBrowser:  cfg.UseBrowser,
		Verbose:     cfg.Verbose,
		DatabaseURL: cfg.DatabaseURL,
	}

	result, err := pipeline.RunForge(ctx, opts)
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("pipeline failed: %s", result.FirstFatalError)
	}
	return nil
}
