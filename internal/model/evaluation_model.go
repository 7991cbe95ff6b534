package model

import (
	"time"
)

// Evaluation is one interview round recorded for a candidate.
// QuantitativeScores and QualitativeComments hold serialized JSON text.
type Evaluation struct {
	ID                  string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CandidateUID        string    `gorm:"type:uuid;index" json:"candidate_uid"`
	RoundType           string    `gorm:"type:varchar(100)" json:"round_type"`
	TotalScore          float64   `gorm:"type:float" json:"total_score"`
	TotalMaxScore       float64   `gorm:"type:float" json:"total_max_score"`
	QuantitativeScores  *string   `gorm:"type:text" json:"quantitative_scores"`
	QualitativeComments *string   `gorm:"type:text" json:"qualitative_comments"`
	IsComplete          bool      `json:"is_complete"`
	CreatedAt           time.Time `json:"created_at"`
}

func (e *Evaluation) TableName() string {
	return "evaluations"
}
