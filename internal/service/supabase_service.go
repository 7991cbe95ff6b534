package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/vrecruit/recruit-backend/internal/config"
	"github.com/vrecruit/recruit-backend/internal/dto"
	"github.com/vrecruit/recruit-backend/internal/model"
)

const (
	profileColumns    = "first_name,surname,position_applied_for,final_verdict"
	evaluationColumns = "round_type,total_score,total_max_score,quantitative_scores,qualitative_comments"
)

var ErrUpstream = errors.New("supabase request failed")

// UpstreamError carries a non-success Supabase response.
type UpstreamError struct {
	Op     string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: supabase returned %d: %s", e.Op, e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

type SupabaseServiceInterface interface {
	FetchProfile(ctx context.Context, candidateID string) (*model.CandidateProfile, error)
	FetchCompletedEvaluations(ctx context.Context, candidateID string) ([]model.Evaluation, error)
	CreateAuthUser(ctx context.Context, payload dto.AuthUserPayload) (string, error)
	InsertProfile(ctx context.Context, payload dto.CandidateProfilePayload) error
	DeleteAuthUser(ctx context.Context, userID string) error
}

// SupabaseService talks to the Supabase REST and auth admin APIs with the service role key.
type SupabaseService struct {
	client       *resty.Client
	restURL      string
	authAdminURL string
	logger       *zap.Logger
}

func NewSupabaseService(cfg *config.SupabaseConfig, logger *zap.Logger) *SupabaseService {
	if logger == nil {
		logger = zap.NewNop()
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), int(math.Max(1, math.Ceil(cfg.RateLimit))))

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", "Bearer "+cfg.ServiceRoleKey).
		SetHeader("apikey", cfg.ServiceRoleKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=representation")

	client.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if err := limiter.Wait(r.Context()); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
		return nil
	})

	return &SupabaseService{
		client:       client,
		restURL:      cfg.RESTURL(),
		authAdminURL: cfg.AuthAdminURL(),
		logger:       logger,
	}
}

// FetchProfile returns nil without error when the candidate has no profile row.
func (s *SupabaseService) FetchProfile(ctx context.Context, candidateID string) (*model.CandidateProfile, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select":  profileColumns,
			"user_id": "eq." + candidateID,
		}).
		Get(s.restURL + "/candidate_profiles")
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &UpstreamError{Op: "fetch profile", Status: resp.StatusCode(), Body: resp.String()}
	}

	row := gjson.GetBytes(resp.Body(), "0")
	if !row.Exists() {
		s.logger.Debug("candidate profile not found", zap.String("candidate_id", candidateID))
		return nil, nil
	}

	return &model.CandidateProfile{
		UserID:             candidateID,
		FirstName:          optionalString(row.Get("first_name")),
		Surname:            optionalString(row.Get("surname")),
		PositionAppliedFor: optionalString(row.Get("position_applied_for")),
		FinalVerdict:       optionalString(row.Get("final_verdict")),
	}, nil
}

func (s *SupabaseService) FetchCompletedEvaluations(ctx context.Context, candidateID string) ([]model.Evaluation, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select":        evaluationColumns,
			"candidate_uid": "eq." + candidateID,
			"is_complete":   "eq.true",
			"order":         "created_at.asc",
		}).
		Get(s.restURL + "/evaluations")
	if err != nil {
		return nil, fmt.Errorf("fetch evaluations: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &UpstreamError{Op: "fetch evaluations", Status: resp.StatusCode(), Body: resp.String()}
	}

	rows := gjson.ParseBytes(resp.Body())
	if !rows.IsArray() {
		return nil, fmt.Errorf("fetch evaluations: unexpected payload: %s", resp.String())
	}

	evals := make([]model.Evaluation, 0)
	rows.ForEach(func(_, row gjson.Result) bool {
		evals = append(evals, model.Evaluation{
			CandidateUID:        candidateID,
			RoundType:           row.Get("round_type").String(),
			TotalScore:          row.Get("total_score").Float(),
			TotalMaxScore:       row.Get("total_max_score").Float(),
			QuantitativeScores:  embeddedJSON(row.Get("quantitative_scores")),
			QualitativeComments: embeddedJSON(row.Get("qualitative_comments")),
			IsComplete:          true,
		})
		return true
	})

	s.logger.Debug("fetched evaluations",
		zap.String("candidate_id", candidateID),
		zap.Int("count", len(evals)))

	return evals, nil
}

// CreateAuthUser registers a login for the candidate and returns its user id.
func (s *SupabaseService) CreateAuthUser(ctx context.Context, payload dto.AuthUserPayload) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(s.authAdminURL)
	if err != nil {
		return "", fmt.Errorf("create auth user: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", &UpstreamError{Op: "create auth user", Status: resp.StatusCode(), Body: resp.String()}
	}

	id := gjson.GetBytes(resp.Body(), "id").String()
	if id == "" {
		return "", fmt.Errorf("create auth user: response has no id: %s", resp.String())
	}
	return id, nil
}

func (s *SupabaseService) InsertProfile(ctx context.Context, payload dto.CandidateProfilePayload) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(s.restURL + "/candidate_profiles")
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	switch resp.StatusCode() {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	default:
		return &UpstreamError{Op: "insert profile", Status: resp.StatusCode(), Body: resp.String()}
	}
}

func (s *SupabaseService) DeleteAuthUser(ctx context.Context, userID string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		Delete(s.authAdminURL + "/" + userID)
	if err != nil {
		return fmt.Errorf("delete auth user: %w", err)
	}
	if resp.IsError() {
		return &UpstreamError{Op: "delete auth user", Status: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}

func optionalString(r gjson.Result) *string {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	s := r.String()
	return &s
}

// embeddedJSON returns the serialized form of a column that may hold either
// JSON text (text column) or a JSON value (jsonb column).
func embeddedJSON(r gjson.Result) *string {
	switch {
	case !r.Exists() || r.Type == gjson.Null:
		return nil
	case r.Type == gjson.String:
		s := r.String()
		return &s
	default:
		s := r.Raw
		return &s
	}
}
