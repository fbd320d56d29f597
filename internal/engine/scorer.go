package engine

import (
	"fmt"
	"math"

	"github.com/lintai-dev/lintai/domain"
)

// Score runs every enabled assertion against the output in order and
// reduces the outcomes into a ValidationReport. Disabled assertions are
// skipped entirely: no result row, no weight.
//
// The pass decision is a conjunction: the weighted score must reach the
// threshold AND no assertion may have failed. A high score with a single
// failed assertion still fails overall.
func Score(assertions []domain.AssertionSpec, output string, threshold float64) *domain.ValidationReport {
	report := &domain.ValidationReport{
		Results:   []domain.AssertionResult{},
		Threshold: threshold,
	}

	var totalWeight, earnedWeight float64

	for _, spec := range assertions {
		if !spec.Enabled {
			continue
		}

		totalWeight += spec.Weight

		result := Evaluate(spec, output)
		report.Results = append(report.Results, result)

		if result.Passed {
			earnedWeight += spec.Weight
		} else {
			report.FailedCount++
		}

		if !spec.Type.IsKnown() {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("unrecognized assertion type %q (%s): treated as passing", spec.Type, spec.Name))
		}
	}

	report.Score = roundedScore(earnedWeight, totalWeight)
	report.Passed = float64(report.Score) >= threshold && report.FailedCount == 0

	return report
}

// roundedScore converts earned/total weight into an integer percentage.
// An empty or zero-weight rule set scores 0; this is defined behavior,
// not an error, and such a run passes only when the threshold is 0.
func roundedScore(earned, total float64) int {
	if total <= 0 {
		return 0
	}
	// Round half-up to the nearest integer.
	return int(math.Floor(earned/total*100 + 0.5))
}
