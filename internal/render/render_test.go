package render

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrecruit/recruit-backend/internal/report"
	"github.com/vrecruit/recruit-backend/internal/util"
)

func sampleReport() report.ReportModel {
	return report.ReportModel{
		CandidateInfo: report.CandidateSummary{
			Name:             "Jane Doe",
			Position:         "Lecturer",
			FinalVerdict:     report.NotAvailable,
			Recommendation:   report.StronglyRecommended,
			OverallScore:     86,
			MaxScore:         report.MaxScore,
			TotalScoreSum:    85.5,
			TotalMaxScoreSum: 100,
		},
		GroupedByRound: []report.RoundScore{
			{Round: "Technical", Score: 45.5, MaxScore: 50, AvgScore: 91},
			{Round: "HR", Score: 40, MaxScore: 50, AvgScore: 80},
		},
		SectionScores: []report.SectionScore{
			{Section: "Coding", Score: 45.5, Max: 50, AvgScore: 91, Comment: "Clean, readable code"},
			{Section: "Attitude", Score: 40, Max: 50, AvgScore: 80, Comment: `Said "yes" to everything`},
		},
		SummaryText: report.Summarize(2, "Jane Doe", 86, report.StronglyRecommended),
	}
}

func TestCSV(t *testing.T) {
	out, err := CSV(sampleReport(), "cand-1")
	require.NoError(t, err)

	want := strings.Join([]string{
		"V-Recruitment Grouped Report for,Jane Doe",
		"Candidate ID,cand-1",
		"Overall Score,85.5/100",
		"Final Recommendation,Strongly Recommended",
		"",
		"Round,Score,Max Score,Average Percentage",
		"Technical,45.5,50,91%",
		"HR,40,50,80%",
		"",
		"Detailed Section Scores/Comments",
		"Section,Score,Max Score,Comment",
		`Coding,45.5,50,"Clean, readable code"`,
		`Attitude,40,50,"Said ""yes"" to everything"`,
		"",
	}, "\n")
	assert.Equal(t, want, string(out))
}

func TestCSV_Parseable(t *testing.T) {
	out, err := CSV(sampleReport(), "cand-1")
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(out))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	last := records[len(records)-1]
	assert.Equal(t, []string{"Attitude", "40", "50", `Said "yes" to everything`}, last)
}

func TestCSV_EmptyReport(t *testing.T) {
	m := report.Aggregate(report.UnknownCandidate, nil)

	out, err := CSV(m, "cand-9")
	require.NoError(t, err)

	assert.Contains(t, string(out), "Overall Score,0/0\n")
	assert.Contains(t, string(out), "Final Recommendation,N/A\n")
	assert.True(t, strings.HasSuffix(string(out), "Section,Score,Max Score,Comment\n"))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "40", Number(40))
	assert.Equal(t, "45.5", Number(45.5))
	assert.Equal(t, "0.125", Number(0.125))
	assert.Equal(t, "85.5/100", Fraction(85.5, 100))
}

func TestPDF(t *testing.T) {
	out, err := PDF(sampleReport(), "cand-1")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	text, err := util.ExtractPDFText(out)
	require.NoError(t, err)

	for _, s := range []string{
		"Candidate Performance Report",
		"Candidate: Jane Doe",
		"ID: cand-1",
		"Position: Lecturer",
		"85.5/100",
		"Strongly Recommended",
		"Evaluation Scores Breakdown",
		"Technical",
		"45.5/50",
		"91%",
		"AI Summary & Insights",
		"Detailed Dimension Analysis",
		"Coding (91%)",
		"Clean, readable code",
	} {
		assert.Contains(t, text, s)
	}

	pages, err := util.PDFPageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestPDF_BreaksLongSectionLists(t *testing.T) {
	m := sampleReport()
	m.SectionScores = nil
	for i := 0; i < 40; i++ {
		m.SectionScores = append(m.SectionScores, report.SectionScore{
			Section: fmt.Sprintf("Module %d", i+1), Score: 5, Max: 10, AvgScore: 50,
			Comment: "Adequate answers with room for more depth in follow-up questions.",
		})
	}

	out, err := PDF(m, "cand-1")
	require.NoError(t, err)

	pages, err := util.PDFPageCount(out)
	require.NoError(t, err)
	assert.Greater(t, pages, 1)

	text, err := util.ExtractPDFText(out)
	require.NoError(t, err)
	assert.Contains(t, text, "Detailed Analysis (Continued for Jane Doe)")
	assert.Contains(t, text, "Module 40 (50%)")
}

func TestPDF_EmptyReport(t *testing.T) {
	out, err := PDF(report.Aggregate(report.UnknownCandidate, nil), "cand-9")
	require.NoError(t, err)

	text, err := util.ExtractPDFText(out)
	require.NoError(t, err)
	assert.Contains(t, text, report.NoEvaluationsSummary)
	assert.NotContains(t, text, "Detailed Dimension Analysis")
}
