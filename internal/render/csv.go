package render

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/vrecruit/recruit-backend/internal/report"
)

// CSV renders the grouped report as a single sheet: a header block, the
// per-round table and the per-section table, separated by blank lines.
func CSV(m report.ReportModel, candidateID string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	info := m.CandidateInfo
	rows := [][]string{
		{"V-Recruitment Grouped Report for", info.Name},
		{"Candidate ID", candidateID},
		{"Overall Score", Fraction(info.TotalScoreSum, info.TotalMaxScoreSum)},
		{"Final Recommendation", info.Recommendation},
		nil,
		{"Round", "Score", "Max Score", "Average Percentage"},
	}
	for _, r := range m.GroupedByRound {
		rows = append(rows, []string{r.Round, Number(r.Score), Number(r.MaxScore), fmt.Sprintf("%d%%", r.AvgScore)})
	}
	rows = append(rows,
		nil,
		[]string{"Detailed Section Scores/Comments"},
		[]string{"Section", "Score", "Max Score", "Comment"},
	)
	for _, s := range m.SectionScores {
		rows = append(rows, []string{s.Section, Number(s.Score), Number(s.Max), s.Comment})
	}

	for _, row := range rows {
		if row == nil {
			// blank separator line
			w.Flush()
			buf.WriteByte('\n')
			continue
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Number formats a score with the fewest digits that represent it exactly.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func Fraction(score, max float64) string {
	return Number(score) + "/" + Number(max)
}
