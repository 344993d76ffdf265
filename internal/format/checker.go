// Package format implements the cross-cutting format checker that runs once
// over a fully assembled resume. It is pure and deterministic: it never calls
// the generation service and never retries, it only reports.
package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-forge/internal/types"
	"github.com/jonathan/resume-forge/internal/validation"
)

// Word-count contracts re-checked over the assembled output.
var (
	summaryWords  = validation.WordRange{Min: 140, Max: 160}
	overviewWords = validation.WordRange{Min: 40, Max: 60}
	bulletWords   = validation.WordRange{Min: 25, Max: 40}
)

const (
	// overusedThreshold flags any content word occurring this many times or more.
	overusedThreshold = 3
	// crossResumeVerbThreshold is the soft limit for one leading verb across
	// the whole resume.
	crossResumeVerbThreshold = 2
	// minContentWordLen is the shortest word counted in the frequency table.
	minContentWordLen = 4

	maxScore = 10.0
)

// Per-category deductions, each capped so one noisy category cannot zero the
// score on its own.
const (
	punctuationDeduction = 0.5
	punctuationCap       = 2.0
	lengthDeduction      = 0.5
	lengthCap            = 2.0
	overusedDeduction    = 0.25
	overusedCap          = 1.5
	roleVerbDeduction    = 1.0
	roleVerbCap          = 3.0
	crossVerbDeduction   = 0.25
	crossVerbCap         = 1.0
)

// CheckResume runs every format check over the assembled resume and produces
// a deterministic numeric score plus an itemized issue list.
func CheckResume(resume *types.AssembledResume) *types.FormatReport {
	report := &types.FormatReport{Score: maxScore}
	deductions := map[string]float64{}

	deduct := func(category string, amount, limit float64) {
		if deductions[category]+amount > limit {
			amount = limit - deductions[category]
		}
		if amount <= 0 {
			return
		}
		deductions[category] += amount
		report.Score -= amount
	}

	checkPunctuation(resume, report, deduct)
	checkWordCounts(resume, report, deduct)
	checkOverusedWords(resume, report, deduct)
	checkVerbRepetition(resume, report, deduct)

	if report.Score < 0 {
		report.Score = 0
	}
	return report
}

type deductFunc func(category string, amount, limit float64)

// checkPunctuation flags forbidden punctuation, currently the em-dash.
func checkPunctuation(resume *types.AssembledResume, report *types.FormatReport, deduct deductFunc) {
	for _, section := range sections(resume) {
		if count := strings.Count(section.text, "—"); count > 0 {
			report.Issues = append(report.Issues, types.FormatIssue{
				Severity: types.SeverityBlocker,
				Category: "punctuation",
				Details:  fmt.Sprintf("%s contains %d em-dash(es); em-dashes are not allowed", section.name, count),
			})
			deduct("punctuation", punctuationDeduction*float64(count), punctuationCap)
		}
	}
}

// checkWordCounts re-validates every word-count contract over the assembled text.
func checkWordCounts(resume *types.AssembledResume, report *types.FormatReport, deduct deductFunc) {
	check := func(name, text string, r validation.WordRange, severity types.FormatSeverity) {
		if text == "" {
			return
		}
		words := validation.CountWords(text)
		if !r.Contains(words) {
			report.Issues = append(report.Issues, types.FormatIssue{
				Severity: severity,
				Category: "length",
				Details:  fmt.Sprintf("%s has %d words, expected %d-%d", name, words, r.Min, r.Max),
			})
			deduct("length", lengthDeduction, lengthCap)
		}
	}

	check("summary", resume.Summary, summaryWords, types.SeverityWarning)
	check("overview", resume.Overview, overviewWords, types.SeverityWarning)
	for _, role := range resume.Roles {
		for i, bullet := range role.Bullets {
			check(fmt.Sprintf("role-%d bullet-%d", role.PositionSlot, i+1), bullet, bulletWords, types.SeverityWarning)
		}
	}
}

// checkOverusedWords builds a frequency table over content words and flags any
// word appearing at or above the overused threshold.
func checkOverusedWords(resume *types.AssembledResume, report *types.FormatReport, deduct deductFunc) {
	freq := WordFrequency(fullText(resume))

	overused := make([]string, 0)
	for word, count := range freq {
		if count >= overusedThreshold {
			overused = append(overused, word)
		}
	}
	sort.Strings(overused)

	for _, word := range overused {
		report.Issues = append(report.Issues, types.FormatIssue{
			Severity: types.SeveritySuggestion,
			Category: "overused-word",
			Details:  fmt.Sprintf("word %q appears %d times across the resume", word, freq[word]),
		})
		deduct("overused-word", overusedDeduction, overusedCap)
	}
}

// checkVerbRepetition enforces distinct leading verbs within each role's
// bullets (hard violation) and a soft cross-resume repetition threshold.
func checkVerbRepetition(resume *types.AssembledResume, report *types.FormatReport, deduct deductFunc) {
	globalVerbs := make(map[string]int)
	countVerb := func(text string) {
		if verb := validation.LeadingVerb(text); verb != "" {
			globalVerbs[verb]++
		}
	}

	countVerb(resume.Summary)
	countVerb(resume.Overview)
	for _, highlight := range resume.Highlights {
		countVerb(highlight)
	}

	for _, role := range resume.Roles {
		roleVerbs := make(map[string]int)
		for i, bullet := range role.Bullets {
			verb := validation.LeadingVerb(bullet)
			if verb == "" {
				continue
			}
			countVerb(bullet)
			if prior, ok := roleVerbs[verb]; ok {
				report.Issues = append(report.Issues, types.FormatIssue{
					Severity: types.SeverityBlocker,
					Category: "verb-repetition",
					Details: fmt.Sprintf("role-%d bullet-%d repeats leading verb %q already used by bullet-%d",
						role.PositionSlot, i+1, verb, prior),
				})
				deduct("verb-repetition", roleVerbDeduction, roleVerbCap)
			} else {
				roleVerbs[verb] = i + 1
			}
		}
	}

	crossVerbs := make([]string, 0)
	for verb, count := range globalVerbs {
		if count > crossResumeVerbThreshold {
			crossVerbs = append(crossVerbs, verb)
		}
	}
	sort.Strings(crossVerbs)
	for _, verb := range crossVerbs {
		report.Issues = append(report.Issues, types.FormatIssue{
			Severity: types.SeverityWarning,
			Category: "verb-repetition",
			Details:  fmt.Sprintf("leading verb %q used %d times across the resume", verb, globalVerbs[verb]),
		})
		deduct("cross-verb", crossVerbDeduction, crossVerbCap)
	}
}

// WordFrequency computes a frequency table over content words: length >= 4,
// lowercased, punctuation stripped, stop-words excluded.
func WordFrequency(text string) map[string]int {
	freq := make(map[string]int)
	for _, field := range strings.Fields(text) {
		word := strings.ToLower(strings.Trim(field, ".,!?;:()\"'"))
		if len(word) < minContentWordLen || stopWords[word] {
			continue
		}
		freq[word]++
	}
	return freq
}

type section struct {
	name string
	text string
}

func sections(resume *types.AssembledResume) []section {
	out := []section{
		{"summary", resume.Summary},
		{"overview", resume.Overview},
	}
	for i, h := range resume.Highlights {
		out = append(out, section{fmt.Sprintf("highlight-%d", i+1), h})
	}
	for _, role := range resume.Roles {
		for i, b := range role.Bullets {
			out = append(out, section{fmt.Sprintf("role-%d bullet-%d", role.PositionSlot, i+1), b})
		}
	}
	return out
}

func fullText(resume *types.AssembledResume) string {
	var sb strings.Builder
	for _, s := range sections(resume) {
		sb.WriteString(s.text)
		sb.WriteString(" ")
	}
	return sb.String()
}
