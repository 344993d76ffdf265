package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-forge/internal/format"
	"github.com/jonathan/resume-forge/internal/observability"
	"github.com/jonathan/resume-forge/internal/types"
)

var checkFormatCmd = &cobra.Command{
	Use:   "check-format",
	Short: "Run the format checker over an assembled resume",
	Long:  "Runs the deterministic cross-cutting format check (punctuation, word frequency, word ranges, verb repetition) over an AssembledResume JSON and writes the FormatReport.",
	RunE:  runCheckFormat,
}

var (
	checkFormatInput  string
	checkFormatOutput string
)

func init() {
	checkFormatCmd.Flags().StringVarP(&checkFormatInput, "resume", "r", "", "Path to input AssembledResume JSON file (required)")
	checkFormatCmd.Flags().StringVarP(&checkFormatOutput, "out", "o", "", "Path to output FormatReport JSON file (required)")

	if err := checkFormatCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	if err := checkFormatCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(checkFormatCmd)
}

func runCheckFormat(_ *cobra.Command, _ []string) error {
	resumeContent, err := os.ReadFile(checkFormatInput)
	if err != nil {
		return fmt.Errorf("failed to read resume file %s: %w", checkFormatInput, err)
	}

	var resume types.AssembledResume
	if err := json.Unmarshal(resumeContent, &resume); err != nil {
		return fmt.Errorf("failed to unmarshal resume JSON: %w", err)
	}

	report := format.CheckResume(&resume)

	if err := writeJSONOutput(checkFormatOutput, report); err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintFormatReport(report)

	_, _ = fmt.Fprintf(os.Stdout, "Format report (score %.2f/10, %d issues) written to %s\n",
		report.Score, len(report.Issues), checkFormatOutput)
	return nil
}
