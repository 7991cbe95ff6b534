package report

import "strings"

const (
	commentSeparator = " | "
	noSectionComment = "No specific qualitative comments."
)

type roundTotals struct {
	score float64
	max   float64
}

type sectionTotals struct {
	score    float64
	max      float64
	comments []string
}

// Aggregate folds a candidate's completed evaluations into a ReportModel.
// Rounds and sections keep the order in which they were first seen. It has no
// side effects and is safe for concurrent use.
func Aggregate(profile CandidateInfo, evaluations []RawEvaluation) ReportModel {
	if len(evaluations) == 0 {
		return emptyReport(profile)
	}

	rounds := newOrderedMap[roundTotals]()
	sections := newOrderedMap[sectionTotals]()

	for _, eval := range evaluations {
		r := rounds.entry(eval.RoundType)
		r.score += eval.TotalScore
		r.max += eval.TotalMaxScore

		comments := ParseQualitative(eval.QualitativeComments)
		for _, m := range ParseQuantitative(eval.QuantitativeScores) {
			s := sections.entry(m.Module)
			s.score += m.Score
			s.max += m.Max
			if c := commentFor(comments, m.Module); c != NotAvailable {
				s.comments = append(s.comments, c)
			}
		}
	}

	var scoreSum, maxSum float64
	grouped := make([]RoundScore, 0, rounds.len())
	rounds.each(func(name string, r *roundTotals) {
		grouped = append(grouped, RoundScore{
			Round:    name,
			Score:    r.score,
			MaxScore: r.max,
			AvgScore: Percentage(r.score, r.max),
		})
		scoreSum += r.score
		maxSum += r.max
	})

	sectionScores := make([]SectionScore, 0, sections.len())
	sections.each(func(name string, s *sectionTotals) {
		comment := noSectionComment
		if len(s.comments) > 0 {
			comment = strings.Join(s.comments, commentSeparator)
		}
		sectionScores = append(sectionScores, SectionScore{
			Section:  name,
			Score:    s.score,
			Max:      s.max,
			AvgScore: Percentage(s.score, s.max),
			Comment:  comment,
		})
	})

	overall := Percentage(scoreSum, maxSum)
	recommendation := Recommend(profile.FinalVerdict, overall)

	return ReportModel{
		CandidateInfo: CandidateSummary{
			Name:             profile.Name,
			Position:         profile.Position,
			FinalVerdict:     profile.FinalVerdict,
			Recommendation:   recommendation,
			OverallScore:     overall,
			MaxScore:         MaxScore,
			TotalScoreSum:    scoreSum,
			TotalMaxScoreSum: maxSum,
		},
		GroupedByRound: grouped,
		SectionScores:  sectionScores,
		SummaryText:    Summarize(len(evaluations), profile.Name, overall, recommendation),
	}
}

// emptyReport never derives a recommendation: without evaluations there is nothing to judge.
func emptyReport(profile CandidateInfo) ReportModel {
	return ReportModel{
		CandidateInfo: CandidateSummary{
			Name:           profile.Name,
			Position:       profile.Position,
			FinalVerdict:   profile.FinalVerdict,
			Recommendation: NotAvailable,
			MaxScore:       MaxScore,
		},
		GroupedByRound: []RoundScore{},
		SectionScores:  []SectionScore{},
		SummaryText:    NoEvaluationsSummary,
	}
}
