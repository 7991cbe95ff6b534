package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/vrecruit/recruit-backend/internal/dto"
	"github.com/vrecruit/recruit-backend/internal/model"
)

// MockEvaluationSource is a function-based mock of usecase.EvaluationSource.
type MockEvaluationSource struct {
	FetchProfileFunc              func(ctx context.Context, candidateID string) (*model.CandidateProfile, error)
	FetchCompletedEvaluationsFunc func(ctx context.Context, candidateID string) ([]model.Evaluation, error)
}

func (m *MockEvaluationSource) FetchProfile(ctx context.Context, candidateID string) (*model.CandidateProfile, error) {
	if m.FetchProfileFunc != nil {
		return m.FetchProfileFunc(ctx, candidateID)
	}
	return nil, nil
}

func (m *MockEvaluationSource) FetchCompletedEvaluations(ctx context.Context, candidateID string) ([]model.Evaluation, error) {
	if m.FetchCompletedEvaluationsFunc != nil {
		return m.FetchCompletedEvaluationsFunc(ctx, candidateID)
	}
	return []model.Evaluation{}, nil
}

// MockCandidateStore is a function-based mock of usecase.CandidateStore.
type MockCandidateStore struct {
	CreateAuthUserFunc func(ctx context.Context, payload dto.AuthUserPayload) (string, error)
	InsertProfileFunc  func(ctx context.Context, payload dto.CandidateProfilePayload) error
	DeleteAuthUserFunc func(ctx context.Context, userID string) error
}

func (m *MockCandidateStore) CreateAuthUser(ctx context.Context, payload dto.AuthUserPayload) (string, error) {
	if m.CreateAuthUserFunc != nil {
		return m.CreateAuthUserFunc(ctx, payload)
	}
	return "user-1", nil
}

func (m *MockCandidateStore) InsertProfile(ctx context.Context, payload dto.CandidateProfilePayload) error {
	if m.InsertProfileFunc != nil {
		return m.InsertProfileFunc(ctx, payload)
	}
	return nil
}

func (m *MockCandidateStore) DeleteAuthUser(ctx context.Context, userID string) error {
	if m.DeleteAuthUserFunc != nil {
		return m.DeleteAuthUserFunc(ctx, userID)
	}
	return nil
}

// MockSummarizer is a function-based mock of service.GeminiServiceInterface.
type MockSummarizer struct {
	SummarizeCommentsFunc func(ctx context.Context, comments []string) (string, error)
}

func (m *MockSummarizer) SummarizeComments(ctx context.Context, comments []string) (string, error) {
	if m.SummarizeCommentsFunc != nil {
		return m.SummarizeCommentsFunc(ctx, comments)
	}
	return "", nil
}

// RecordingMetrics counts outcomes per kind.
type RecordingMetrics struct {
	mu         sync.Mutex
	Reports    []string
	Candidates []string
	Summaries  []string
}

func (m *RecordingMetrics) RecordReportBuild(outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reports = append(m.Reports, outcome)
}

func (m *RecordingMetrics) RecordCandidateCreate(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Candidates = append(m.Candidates, outcome)
}

func (m *RecordingMetrics) RecordSummary(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Summaries = append(m.Summaries, source)
}
