package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-forge/internal/ingest"
)

var ingestJobCmd = &cobra.Command{
	Use:   "ingest-job",
	Short: "Ingest a job posting from a file or URL",
	Long:  "Acquires a job posting from a local text file or URL, cleans and normalizes the text, and writes a Posting JSON ready for signal extraction.",
	RunE:  runIngestJob,
}

var (
	ingestJobFile       string
	ingestJobURL        string
	ingestJobOutput     string
	ingestJobUseBrowser bool
)

func init() {
	ingestJobCmd.Flags().StringVarP(&ingestJobFile, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	ingestJobCmd.Flags().StringVar(&ingestJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	ingestJobCmd.Flags().StringVarP(&ingestJobOutput, "out", "o", "", "Path to output Posting JSON file (required)")
	ingestJobCmd.Flags().BoolVar(&ingestJobUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")

	if err := ingestJobCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(ingestJobCmd)
}

func runIngestJob(_ *cobra.Command, _ []string) error {
	if ingestJobFile == "" && ingestJobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided")
	}
	if ingestJobFile != "" && ingestJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	var posting *ingest.Posting
	var err error
	if ingestJobURL != "" {
		posting, err = ingest.FromURL(context.Background(), ingestJobURL, ingestJobUseBrowser)
	} else {
		posting, err = ingest.FromFile(ingestJobFile)
	}
	if err != nil {
		return fmt.Errorf("failed to ingest job posting: %w", err)
	}

	if err := writeJSONOutput(ingestJobOutput, posting); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully ingested %d bytes to %s\n", posting.Bytes, ingestJobOutput)
	return nil
}

// writeJSONOutput marshals content with indentation and writes it to path,
// creating parent directories as needed.
func writeJSONOutput(path string, content any) error {
	jsonOutput, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
