package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-forge/internal/ingest"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/signals"
)

var extractSignalsCmd = &cobra.Command{
	Use:   "extract-signals",
	Short: "Extract requirement signals from an ingested job posting",
	Long:  "Runs the signal extraction prompt against an ingested job posting and writes the normalized RequirementSignals JSON used by scoring and generation.",
	RunE:  runExtractSignals,
}

var (
	extractSignalsInput  string
	extractSignalsOutput string
	extractSignalsAPIKey string
)

func init() {
	extractSignalsCmd.Flags().StringVarP(&extractSignalsInput, "posting", "p", "", "Path to input Posting JSON file (required)")
	extractSignalsCmd.Flags().StringVarP(&extractSignalsOutput, "out", "o", "", "Path to output RequirementSignals JSON file (required)")
	extractSignalsCmd.Flags().StringVar(&extractSignalsAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	if err := extractSignalsCmd.MarkFlagRequired("posting"); err != nil {
		panic(fmt.Sprintf("failed to mark posting flag as required: %v", err))
	}
	if err := extractSignalsCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(extractSignalsCmd)
}

func runExtractSignals(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey := extractSignalsAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	postingContent, err := os.ReadFile(extractSignalsInput)
	if err != nil {
		return fmt.Errorf("failed to read posting file %s: %w", extractSignalsInput, err)
	}

	var posting ingest.Posting
	if err := json.Unmarshal(postingContent, &posting); err != nil {
		return fmt.Errorf("failed to unmarshal posting JSON: %w", err)
	}

	gen, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create generation client: %w", err)
	}
	defer func() { _ = gen.Close() }()

	sigs, err := signals.Extract(ctx, gen, posting.Text)
	if err != nil {
		return fmt.Errorf("failed to extract signals: %w", err)
	}

	if err := writeJSONOutput(extractSignalsOutput, sigs); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully extracted signals (%d industries, %d functions, %d themes) to %s\n",
		len(sigs.Industries), len(sigs.Functions), len(sigs.Themes), extractSignalsOutput)
	return nil
}
