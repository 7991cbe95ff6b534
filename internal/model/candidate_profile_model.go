package model

// CandidateProfile is the subset of the candidate_profiles row used for reports.
// Nullable columns stay pointers so an absent value can be told apart from an empty one.
type CandidateProfile struct {
	UserID             string  `gorm:"type:uuid;primaryKey" json:"user_id"`
	FirstName          *string `json:"first_name"`
	Surname            *string `json:"surname"`
	PositionAppliedFor *string `json:"position_applied_for"`
	FinalVerdict       *string `json:"final_verdict"`
}

func (p *CandidateProfile) TableName() string {
	return "candidate_profiles"
}
