package report

import (
	"fmt"
	"math"
)

const (
	StronglyRecommended = "Strongly Recommended"
	Waitlist            = "Waitlist"
	NotRecommended      = "Not Recommended"
)

// Recommend returns the explicit verdict when one is set, otherwise a label
// derived from the overall percentage. Both thresholds are exclusive.
func Recommend(finalVerdict string, overallScore int) string {
	if finalVerdict != "" && finalVerdict != NotAvailable {
		return finalVerdict
	}
	switch {
	case overallScore > 80:
		return StronglyRecommended
	case overallScore > 60:
		return Waitlist
	default:
		return NotRecommended
	}
}

// Percentage expresses score/max on a 0-100 scale, rounding half to even
// (62.5 -> 62, 87.5 -> 88). A non-positive max yields 0.
func Percentage(score, max float64) int {
	if max <= 0 {
		return 0
	}
	return int(math.RoundToEven(score / max * 100))
}

// NoEvaluationsSummary is the summary of a report without completed evaluations.
const NoEvaluationsSummary = "No completed evaluations found."

// Summarize renders the templated one-line report summary.
func Summarize(evaluationCount int, candidateName string, overallScore int, recommendation string) string {
	return fmt.Sprintf("Based on %d completed evaluations, the overall score is %d%%. Candidate %s is rated as %s for the position.",
		evaluationCount, overallScore, candidateName, recommendation)
}
