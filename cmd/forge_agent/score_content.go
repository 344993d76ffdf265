package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-forge/internal/scoring"
	"github.com/jonathan/resume-forge/internal/store"
	"github.com/jonathan/resume-forge/internal/types"
)

var scoreContentCmd = &cobra.Command{
	Use:   "score-content",
	Short: "Score the content library against requirement signals",
	Long:  "Deterministically scores every eligible content item against extracted requirement signals and writes the resulting selection Plan JSON, including per-candidate score breakdowns and blocked IDs.",
	RunE:  runScoreContent,
}

var (
	scoreContentLibrary string
	scoreContentSignals string
	scoreContentOutput  string
)

func init() {
	scoreContentCmd.Flags().StringVarP(&scoreContentLibrary, "library", "l", "", "Path to content library JSON file (required)")
	scoreContentCmd.Flags().StringVarP(&scoreContentSignals, "signals", "s", "", "Path to input RequirementSignals JSON file (required)")
	scoreContentCmd.Flags().StringVarP(&scoreContentOutput, "out", "o", "", "Path to output Plan JSON file (required)")

	if err := scoreContentCmd.MarkFlagRequired("library"); err != nil {
		panic(fmt.Sprintf("failed to mark library flag as required: %v", err))
	}
	if err := scoreContentCmd.MarkFlagRequired("signals"); err != nil {
		panic(fmt.Sprintf("failed to mark signals flag as required: %v", err))
	}
	if err := scoreContentCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreContentCmd)
}

func runScoreContent(_ *cobra.Command, _ []string) error {
	signalsContent, err := os.ReadFile(scoreContentSignals)
	if err != nil {
		return fmt.Errorf("failed to read signals file %s: %w", scoreContentSignals, err)
	}

	var sigs types.RequirementSignals
	if err := json.Unmarshal(signalsContent, &sigs); err != nil {
		return fmt.Errorf("failed to unmarshal signals JSON: %w", err)
	}

	library, err := store.OpenFileLibrary(scoreContentLibrary)
	if err != nil {
		return fmt.Errorf("failed to load content library: %w", err)
	}
	items, err := library.AllContentItems()
	if err != nil {
		return err
	}
	table, err := library.ConflictTable()
	if err != nil {
		return err
	}

	plan := scoring.BuildPlan(items, table, &sigs, scoring.DefaultQuotas())

	if err := writeJSONOutput(scoreContentOutput, plan); err != nil {
		return err
	}

	for _, selErr := range plan.SelectionErrors() {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %v\n", selErr)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Successfully built selection plan (%d blocked IDs) to %s\n",
		len(plan.BlockedIDs), scoreContentOutput)
	return nil
}
