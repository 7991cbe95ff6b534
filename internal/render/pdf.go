package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/vrecruit/recruit-backend/internal/report"
)

type rgb struct{ r, g, b int }

var (
	colorPrimary   = rgb{0xFF, 0x3B, 0x5F}
	colorSecondary = rgb{0x4C, 0xAF, 0x50}
	colorText      = rgb{0x33, 0x33, 0x33}
	colorBgLight   = rgb{0xF5, 0xF5, 0xF5}
	colorRule      = rgb{0xBB, 0xBB, 0xBB}
)

// Letter page in points, top-left origin.
const (
	marginLeft  = 50.0
	marginRight = 550.0
	lineHeight  = 16.0
	topY        = 42.0
	breakY      = 692.0
	bottomY     = 732.0
)

const reportTitle = "Candidate Performance Report"

// PDF renders the one-to-two page candidate report.
func PDF(m report.ReportModel, candidateID string) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetTitle(reportTitle, true)
	doc.SetCreator("V-Recruit", true)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	w := &pdfWriter{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}
	info := m.CandidateInfo
	y := topY

	w.font("B", 20, colorPrimary)
	w.text(marginLeft, y, reportTitle)
	y += 25

	w.font("", 10, colorText)
	w.text(marginLeft, y, "Candidate: "+info.Name)
	w.text(marginLeft+250, y, "ID: "+candidateID)
	y += lineHeight
	w.text(marginLeft, y, "Position: "+info.Position)
	y += 30

	recColor := colorPrimary
	if strings.Contains(info.Recommendation, "Recommended") {
		recColor = colorSecondary
	}
	doc.SetFillColor(colorBgLight.r, colorBgLight.g, colorBgLight.b)
	doc.RoundedRect(marginLeft, y-45, marginRight-marginLeft, 50, 8, "1234", "F")
	w.font("B", 12, colorText)
	w.text(marginLeft+10, y-25, "Overall Score:")
	w.text(marginLeft+10, y-10, "Recommendation:")
	w.font("B", 16, colorText)
	w.text(marginLeft+150, y-25, Fraction(info.TotalScoreSum, info.TotalMaxScoreSum))
	w.font("B", 16, recColor)
	w.text(marginLeft+150, y-10, info.Recommendation)
	y += 60

	y = w.heading(y, "Evaluation Scores Breakdown")
	w.font("B", 10, colorText)
	w.text(marginLeft+10, y, "Round Type")
	w.text(marginLeft+200, y, "Total Score")
	w.text(marginLeft+350, y, "Average %")
	w.rule(y+2, colorRule)
	y += 15

	w.font("", 10, colorText)
	for _, r := range m.GroupedByRound {
		w.text(marginLeft+10, y, r.Round)
		w.text(marginLeft+200, y, Fraction(r.Score, r.MaxScore))
		w.text(marginLeft+350, y, fmt.Sprintf("%d%%", r.AvgScore))
		y += lineHeight
	}
	y += 20

	y = w.heading(y, "AI Summary & Insights")
	y += 5
	w.font("I", 10, colorText)
	for _, line := range w.wrap(m.SummaryText, marginRight-marginLeft-20) {
		w.doc.Text(marginLeft+10, y, line)
		y += lineHeight
	}
	y += 20

	if len(m.SectionScores) > 0 {
		y = w.heading(y, "Detailed Dimension Analysis")
		y += 5

		for _, s := range m.SectionScores {
			if y > breakY {
				doc.AddPage()
				y = topY
				w.font("", 12, colorText)
				w.text(marginLeft, y, fmt.Sprintf("Detailed Analysis (Continued for %s)", info.Name))
				y += 20
			}

			w.font("B", 10, colorPrimary)
			w.text(marginLeft+5, y, fmt.Sprintf("%s (%d%%)", s.Section, s.AvgScore))
			y += lineHeight

			w.font("", 9, colorText)
			body := fmt.Sprintf("Score: %s | Comment: %s", Fraction(s.Score, s.Max), s.Comment)
			for _, line := range w.wrap(body, marginRight-marginLeft-20) {
				w.doc.Text(marginLeft+15, y, line)
				y += 12
				if y > bottomY {
					break
				}
			}
			y += 10
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfWriter wraps the drawing calls used by the report with the cp1252 translation core fonts need.
type pdfWriter struct {
	doc *fpdf.Fpdf
	tr  func(string) string
}

func (w *pdfWriter) font(style string, size float64, c rgb) {
	w.doc.SetFont("Helvetica", style, size)
	w.doc.SetTextColor(c.r, c.g, c.b)
}

func (w *pdfWriter) text(x, y float64, s string) {
	w.doc.Text(x, y, w.tr(s))
}

func (w *pdfWriter) rule(y float64, c rgb) {
	w.doc.SetDrawColor(c.r, c.g, c.b)
	w.doc.Line(marginLeft, y, marginRight, y)
}

func (w *pdfWriter) heading(y float64, title string) float64 {
	w.font("B", 14, colorText)
	w.text(marginLeft, y, title)
	y += 5
	w.rule(y, colorPrimary)
	return y + 15
}

// wrap splits s to fit width in the current font. Lines come back already translated.
func (w *pdfWriter) wrap(s string, width float64) []string {
	if strings.TrimSpace(s) == "" {
		return []string{""}
	}
	return w.doc.SplitText(w.tr(s), width)
}
