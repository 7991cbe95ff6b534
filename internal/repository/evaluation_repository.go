package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vrecruit/recruit-backend/internal/model"
)

// JSON columns are cast to text so the same query works for text and jsonb schemas.
const evaluationSelect = "round_type, total_score, total_max_score, " +
	"quantitative_scores::text AS quantitative_scores, " +
	"qualitative_comments::text AS qualitative_comments"

type EvaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{db}
}

func (r *EvaluationRepository) FetchProfile(ctx context.Context, candidateID string) (*model.CandidateProfile, error) {
	var profile model.CandidateProfile
	err := r.db.WithContext(ctx).
		Select("user_id, first_name, surname, position_applied_for, final_verdict").
		Where("user_id = ?", candidateID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return &profile, nil
}

func (r *EvaluationRepository) FetchCompletedEvaluations(ctx context.Context, candidateID string) ([]model.Evaluation, error) {
	evals := make([]model.Evaluation, 0)
	err := r.db.WithContext(ctx).
		Select(evaluationSelect).
		Where("candidate_uid = ? AND is_complete = ?", candidateID, true).
		Order("created_at").
		Find(&evals).Error
	if err != nil {
		return nil, fmt.Errorf("fetch evaluations: %w", err)
	}
	for i := range evals {
		evals[i].CandidateUID = candidateID
		evals[i].IsComplete = true
	}
	return evals, nil
}
