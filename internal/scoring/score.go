// Package scoring computes match scores between content item tags and
// job-requirement signals, and selects the best candidates per category.
package scoring

import "strings"

// Score weights. Direct tag matches dominate partial (substring) matches, and
// the industry/function totals are capped so an item with many overlapping
// tags cannot win on tag count rather than fit quality.
const (
	directMatchPoints  = 3
	partialMatchPoints = 1
	matchScoreCap      = 9

	themeDirectPoints  = 2
	themePartialPoints = 1
)

// MatchScore scores one item tag set against one signal tag set. For each
// signal tag: an exact match adds direct points, otherwise a substring match
// in either direction adds partial points. The running total is capped when
// cap is positive.
func MatchScore(itemTags, signalTags []string, direct, partial, capAt int) int {
	score := 0
	for _, signal := range signalTags {
		signal = normalizeTag(signal)
		if signal == "" {
			continue
		}
		best := 0
		for _, tag := range itemTags {
			tag = normalizeTag(tag)
			if tag == "" {
				continue
			}
			if tag == signal {
				best = direct
				break
			}
			if best < partial && (strings.Contains(tag, signal) || strings.Contains(signal, tag)) {
				best = partial
			}
		}
		score += best
	}
	if capAt > 0 && score > capAt {
		score = capAt
	}
	return score
}

// IndustryScore scores an item's industry tags against the job's industry signals.
func IndustryScore(itemTags, signalTags []string) int {
	return MatchScore(itemTags, signalTags, directMatchPoints, partialMatchPoints, matchScoreCap)
}

// FunctionScore scores an item's function tags against the job's function signals.
func FunctionScore(itemTags, signalTags []string) int {
	return MatchScore(itemTags, signalTags, directMatchPoints, partialMatchPoints, matchScoreCap)
}

// ThemeScore scores a variant's theme tags against the job's theme signals.
// Uncapped: themes only drive variant selection, not base-item ranking.
func ThemeScore(themeTags, signalTags []string) int {
	return MatchScore(themeTags, signalTags, themeDirectPoints, themePartialPoints, 0)
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
