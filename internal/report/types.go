package report

// NotAvailable marks a missing profile value or an absent verdict.
const NotAvailable = "N/A"

// MaxScore is the scale every percentage in a report is expressed on.
const MaxScore = 100

// CandidateInfo is the normalized candidate profile a report is built for.
type CandidateInfo struct {
	Name         string `json:"name"`
	Position     string `json:"position"`
	FinalVerdict string `json:"final_verdict"`
}

// RawEvaluation is one completed round as delivered by an evaluation source.
// The two JSON-in-text fields are parsed lazily by Aggregate.
type RawEvaluation struct {
	RoundType           string
	TotalScore          float64
	TotalMaxScore       float64
	QuantitativeScores  string
	QualitativeComments string
}

// ModuleScore is a single entry of the quantitative breakdown of a round.
type ModuleScore struct {
	Module string
	Score  float64
	Max    float64
}

// Comment is a single qualitative remark; Round names the module it refers to.
type Comment struct {
	Round   string
	Comment string
}

type CandidateSummary struct {
	Name             string  `json:"name"`
	Position         string  `json:"position"`
	FinalVerdict     string  `json:"final_verdict"`
	Recommendation   string  `json:"recommendation"`
	OverallScore     int     `json:"overall_score"`
	MaxScore         int     `json:"max_score"`
	TotalScoreSum    float64 `json:"total_score_sum"`
	TotalMaxScoreSum float64 `json:"total_max_score_sum"`
}

type RoundScore struct {
	Round    string  `json:"round"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
	AvgScore int     `json:"avg_score"`
}

type SectionScore struct {
	Section  string  `json:"section"`
	Score    float64 `json:"score"`
	Max      float64 `json:"max"`
	AvgScore int     `json:"avg_score"`
	Comment  string  `json:"comment"`
}

// ReportModel is the renderer-independent result of aggregating a candidate's evaluations.
type ReportModel struct {
	CandidateInfo  CandidateSummary `json:"candidate_info"`
	GroupedByRound []RoundScore     `json:"grouped_by_round"`
	SectionScores  []SectionScore   `json:"section_scores"`
	SummaryText    string           `json:"summary_text"`
}
