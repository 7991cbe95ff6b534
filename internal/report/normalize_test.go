package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vrecruit/recruit-backend/internal/model"
)

func strPtr(s string) *string { return &s }

func TestCandidateInfoFromProfile(t *testing.T) {
	t.Run("nil profile", func(t *testing.T) {
		assert.Equal(t, UnknownCandidate, CandidateInfoFromProfile(nil))
	})

	t.Run("full profile", func(t *testing.T) {
		got := CandidateInfoFromProfile(&model.CandidateProfile{
			FirstName:          strPtr("Jane"),
			Surname:            strPtr("Doe"),
			PositionAppliedFor: strPtr("Assistant Professor"),
			FinalVerdict:       strPtr("Hired"),
		})

		assert.Equal(t, CandidateInfo{Name: "Jane Doe", Position: "Assistant Professor", FinalVerdict: "Hired"}, got)
	})

	t.Run("missing fields use defaults", func(t *testing.T) {
		got := CandidateInfoFromProfile(&model.CandidateProfile{FirstName: strPtr("Jane"), FinalVerdict: strPtr("")})

		assert.Equal(t, CandidateInfo{Name: "Jane", Position: NotAvailable, FinalVerdict: NotAvailable}, got)
	})
}

func TestRawEvaluationFromModel(t *testing.T) {
	t.Run("nil json fields default to empty documents", func(t *testing.T) {
		got := RawEvaluationFromModel(model.Evaluation{RoundType: "HR", TotalScore: 3, TotalMaxScore: 5})

		assert.Equal(t, RawEvaluation{
			RoundType:           "HR",
			TotalScore:          3,
			TotalMaxScore:       5,
			QuantitativeScores:  "{}",
			QualitativeComments: "[]",
		}, got)
	})

	t.Run("slice conversion keeps order", func(t *testing.T) {
		got := RawEvaluationsFromModels([]model.Evaluation{
			{RoundType: "Technical", QuantitativeScores: strPtr(`{"A": {"score": 1, "max": 2}}`)},
			{RoundType: "HR"},
		})

		assert.Len(t, got, 2)
		assert.Equal(t, "Technical", got[0].RoundType)
		assert.Equal(t, `{"A": {"score": 1, "max": 2}}`, got[0].QuantitativeScores)
		assert.Equal(t, "HR", got[1].RoundType)
	})
}
