// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/resume-forge/internal/scoring"
	"github.com/jonathan/resume-forge/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSignals outputs a human-readable summary of the extracted requirement signals.
func (p *Printer) PrintSignals(signals *types.RequirementSignals) {
	if signals == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", signals.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", signals.RoleTitle))
	sb.WriteString("\n")

	writeTagList(&sb, "Industries", signals.Industries)
	writeTagList(&sb, "Functions", signals.Functions)
	writeTagList(&sb, "Themes", signals.Themes)
	writeTagList(&sb, "Keywords", signals.Keywords)

	p.printBox("REQUIREMENT SIGNALS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeTagList(sb *strings.Builder, label string, tags []string) {
	if len(tags) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(tags), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", tags[i]))
	}
	if len(tags) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(tags)-maxItemsToShow))
	}
}

// PrintPlan outputs the selection plan with per-candidate score breakdowns.
func (p *Printer) PrintPlan(plan *scoring.Plan) {
	if plan == nil {
		return
	}

	var sb strings.Builder

	if plan.Summary != nil {
		sb.WriteString("Summary:\n")
		writeCandidate(&sb, *plan.Summary)
		sb.WriteString("\n")
	}

	if len(plan.Highlights) > 0 {
		sb.WriteString(fmt.Sprintf("Highlights (%d):\n", len(plan.Highlights)))
		for _, c := range plan.Highlights {
			writeCandidate(&sb, c)
		}
		sb.WriteString("\n")
	}

	slots := make([]int, 0, len(plan.RoleBullets))
	for slot := range plan.RoleBullets {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	for _, slot := range slots {
		selected := plan.RoleBullets[slot]
		sb.WriteString(fmt.Sprintf("Role %d bullets (%d):\n", slot, len(selected)))
		for _, c := range selected {
			writeCandidate(&sb, c)
		}
		sb.WriteString("\n")
	}

	if plan.Overview != nil {
		sb.WriteString("Overview:\n")
		writeCandidate(&sb, *plan.Overview)
		sb.WriteString("\n")
	}

	if len(plan.BlockedIDs) > 0 {
		sb.WriteString(fmt.Sprintf("Blocked IDs: %d\n", len(plan.BlockedIDs)))
	}
	if len(plan.EmptyCategories) > 0 {
		sb.WriteString(fmt.Sprintf("⚠ Empty categories: %s\n", strings.Join(plan.EmptyCategories, ", ")))
	}

	p.printBox("SELECTION PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

func writeCandidate(sb *strings.Builder, c types.ScoredCandidate) {
	id := c.ItemID
	if c.SelectedVariantID != "" {
		id = c.SelectedVariantID
	}
	sb.WriteString(fmt.Sprintf("  #%s  total=%d (i=%d f=%d t=%d)\n",
		id, c.TotalScore, c.IndustryScore, c.FunctionScore, c.ThemeScore))
}

// PrintStageResult outputs the outcome of one pipeline stage.
func (p *Printer) PrintStageResult(result *types.StageResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	icon := "✅"
	switch result.Status {
	case types.StageRetry:
		icon = "🔁"
	case types.StageFailed:
		icon = "❌"
	}
	sb.WriteString(fmt.Sprintf("%s %s  status=%s attempts=%d\n", icon, result.StageName, result.Status, result.Attempts))
	sb.WriteString(fmt.Sprintf("   tokens: %d in / %d out  cost: $%.4f  %dms\n",
		result.TokensIn, result.TokensOut, result.CostEstimate, result.DurationMs))

	if len(result.ValidationIssues) > 0 {
		sb.WriteString("   issues:\n")
		count := min(len(result.ValidationIssues), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("   • %s\n", result.ValidationIssues[i]))
		}
		if len(result.ValidationIssues) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("   ... and %d more\n", len(result.ValidationIssues)-maxItemsToShow))
		}
	}

	p.printBox("STAGE "+strings.ToUpper(result.StageName), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFormatReport outputs the format checker's findings grouped by severity.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFormatReport(report *types.FormatReport) {
	if report == nil {
		return
	}

	if len(report.Issues) == 0 {
		border := strings.Repeat("─", boxWidth-2)
		fmt.Fprintf(p.out, "┌%s┐\n", border)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("✅ FORMAT CLEAN  score %.2f/10", report.Score))
		fmt.Fprintf(p.out, "└%s┘\n", border)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %.2f/10  (%d issues)\n\n", report.Score, len(report.Issues)))

	for _, severity := range []types.FormatSeverity{types.SeverityBlocker, types.SeverityWarning, types.SeveritySuggestion} {
		for _, issue := range report.Issues {
			if issue.Severity != severity {
				continue
			}
			icon := "⚠"
			if severity == types.SeverityBlocker {
				icon = "✖"
			} else if severity == types.SeveritySuggestion {
				icon = "·"
			}
			sb.WriteString(fmt.Sprintf("%s [%s] %s\n", icon, issue.Category, issue.Details))
		}
	}

	p.printBox("FORMAT REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunSummary outputs the final outcome of a pipeline run.
func (p *Printer) PrintRunSummary(result *types.PipelineResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.Success {
		sb.WriteString("Outcome:  success\n")
	} else {
		sb.WriteString("Outcome:  FAILED\n")
		if result.FirstFatalError != "" {
			sb.WriteString(fmt.Sprintf("Error:    %s\n", result.FirstFatalError))
		}
	}
	sb.WriteString(fmt.Sprintf("Stages:   %d\n", len(result.PerStageResults)))
	sb.WriteString(fmt.Sprintf("Cost:     $%.4f\n", result.TotalCost))
	sb.WriteString(fmt.Sprintf("Duration: %dms", result.TotalDurationMs))

	p.printBox("RUN SUMMARY", sb.String())
}
