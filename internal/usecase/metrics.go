package usecase

import "time"

// Metrics receives usecase outcomes. The prometheus implementation lives in middleware.
type Metrics interface {
	RecordReportBuild(outcome string, duration time.Duration)
	RecordCandidateCreate(outcome string)
	RecordSummary(source string)
}

const (
	OutcomeSuccess    = "success"
	OutcomeInvalid    = "invalid"
	OutcomeFetchError = "fetch_error"
	OutcomeAuthError  = "auth_error"
	OutcomeSaveError  = "save_error"

	SummaryEmpty    = "empty"
	SummaryModel    = "model"
	SummaryFallback = "fallback"
)

type noopMetrics struct{}

func (noopMetrics) RecordReportBuild(string, time.Duration) {}

func (noopMetrics) RecordCandidateCreate(string) {}

func (noopMetrics) RecordSummary(string) {}
