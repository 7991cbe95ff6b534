package report

import (
	"strings"

	"github.com/vrecruit/recruit-backend/internal/model"
)

// UnknownCandidate is the placeholder profile used when a candidate has no profile row.
var UnknownCandidate = CandidateInfo{
	Name:         "Unknown Candidate",
	Position:     NotAvailable,
	FinalVerdict: NotAvailable,
}

// CandidateInfoFromProfile applies the per-field defaults to a fetched profile.
// A nil profile maps to UnknownCandidate.
func CandidateInfoFromProfile(p *model.CandidateProfile) CandidateInfo {
	if p == nil {
		return UnknownCandidate
	}
	return CandidateInfo{
		Name:         strings.TrimSpace(valueOr(p.FirstName, "") + " " + valueOr(p.Surname, "")),
		Position:     valueOr(p.PositionAppliedFor, NotAvailable),
		FinalVerdict: valueOr(p.FinalVerdict, NotAvailable),
	}
}

func RawEvaluationFromModel(e model.Evaluation) RawEvaluation {
	return RawEvaluation{
		RoundType:           e.RoundType,
		TotalScore:          e.TotalScore,
		TotalMaxScore:       e.TotalMaxScore,
		QuantitativeScores:  valueOr(e.QuantitativeScores, "{}"),
		QualitativeComments: valueOr(e.QualitativeComments, "[]"),
	}
}

func RawEvaluationsFromModels(evals []model.Evaluation) []RawEvaluation {
	out := make([]RawEvaluation, 0, len(evals))
	for _, e := range evals {
		out = append(out, RawEvaluationFromModel(e))
	}
	return out
}

// valueOr treats nil and empty strings alike.
func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
