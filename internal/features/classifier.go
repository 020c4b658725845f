package features

import (
	"strings"

	"estimator/internal/model"
)

// Quality levels.
const (
	BestLevel  = 1
	WorstLevel = 5
)

// Warnings attached to descriptions that carry no usable signal.
const (
	WarningDescriptionMissing = "Description missing, assigned lowest quality level (5)"
	WarningNoKeyFeatures      = "No key features found, assigned lowest quality level (5)"
)

// Classify maps a free-text description to a quality level.
//
// Every tier counts how many of its cues occur in the text; the tier with
// the highest count wins and ties go to the better (lower) level. A nil or
// blank description, or one with no recognised cue at all, yields the worst
// level together with a warning.
func Classify(description *string) model.Classification {
	if description == nil || strings.TrimSpace(*description) == "" {
		return model.Classification{Level: WorstLevel, Warning: WarningDescriptionMissing}
	}

	scores := Score(*description)

	best, maxScore := WorstLevel, 0
	for _, t := range tiers {
		// strict comparison keeps the first, i.e. best, tier on ties
		if scores[t.Level] > maxScore {
			best, maxScore = t.Level, scores[t.Level]
		}
	}

	if maxScore == 0 {
		return model.Classification{Level: WorstLevel, Warning: WarningNoKeyFeatures}
	}
	return model.Classification{Level: best}
}

// Score returns the number of matching cues per level.
func Score(text string) map[int]int {
	scores := make(map[int]int, len(tiers))
	for _, t := range tiers {
		scores[t.Level] = 0
		for _, f := range t.Features {
			if f.Pattern.MatchString(text) {
				scores[t.Level]++
			}
		}
	}
	return scores
}

// Matches lists the names of every cue found in text, grouped by level.
func Matches(text string) map[int][]string {
	found := make(map[int][]string)
	for _, t := range tiers {
		for _, f := range t.Features {
			if f.Pattern.MatchString(text) {
				found[t.Level] = append(found[t.Level], f.Name)
			}
		}
	}
	return found
}
