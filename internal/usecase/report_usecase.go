package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/vrecruit/recruit-backend/internal/cache"
	"github.com/vrecruit/recruit-backend/internal/model"
	"github.com/vrecruit/recruit-backend/internal/report"
)

var (
	ErrInvalidCandidate = errors.New("candidate id is required")
	ErrReportDataFetch  = errors.New("error fetching report data")
)

// ReportDataError wraps a failure to read a candidate's profile or evaluations.
// It matches ErrReportDataFetch with errors.Is.
type ReportDataError struct {
	Err error
}

func (e *ReportDataError) Error() string {
	return fmt.Sprintf("%s: %v", ErrReportDataFetch, e.Err)
}

func (e *ReportDataError) Unwrap() error {
	return e.Err
}

func (e *ReportDataError) Is(target error) bool {
	return target == ErrReportDataFetch
}

// EvaluationSource is implemented by the Supabase REST service and the Postgres repository.
type EvaluationSource interface {
	FetchProfile(ctx context.Context, candidateID string) (*model.CandidateProfile, error)
	FetchCompletedEvaluations(ctx context.Context, candidateID string) ([]model.Evaluation, error)
}

type ReportUsecase struct {
	source   EvaluationSource
	cache    cache.Cacher
	cacheTTL time.Duration
	sf       singleflight.Group
	metrics  Metrics
	tracer   trace.Tracer
	logger   *zap.Logger
}

type ReportOption func(*ReportUsecase)

// WithReportCache enables read-through caching of built reports.
func WithReportCache(c cache.Cacher, ttl time.Duration) ReportOption {
	return func(uc *ReportUsecase) {
		uc.cache = c
		uc.cacheTTL = ttl
	}
}

func WithReportMetrics(m Metrics) ReportOption {
	return func(uc *ReportUsecase) {
		if m != nil {
			uc.metrics = m
		}
	}
}

func NewReportUsecase(source EvaluationSource, logger *zap.Logger, opts ...ReportOption) *ReportUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &ReportUsecase{
		source:  source,
		metrics: noopMetrics{},
		tracer:  otel.Tracer("report-usecase"),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// BuildReport fetches everything known about a candidate and aggregates it into a ReportModel.
func (uc *ReportUsecase) BuildReport(ctx context.Context, candidateID string) (report.ReportModel, error) {
	start := time.Now()
	candidateID = strings.TrimSpace(candidateID)

	ctx, span := uc.tracer.Start(ctx, "ReportUsecase.BuildReport",
		trace.WithAttributes(
			attribute.String("candidate.id", candidateID),
			attribute.Bool("cache.enabled", uc.cache != nil),
		),
	)
	defer span.End()

	if candidateID == "" {
		span.RecordError(ErrInvalidCandidate)
		span.SetStatus(codes.Error, ErrInvalidCandidate.Error())
		uc.metrics.RecordReportBuild(OutcomeInvalid, time.Since(start))
		return report.ReportModel{}, ErrInvalidCandidate
	}

	var (
		result report.ReportModel
		err    error
	)
	if uc.cache != nil {
		result, err = cache.FindAndCache(ctx, uc.cache, &uc.sf, "report:"+candidateID, uc.cacheTTL, uc.logger,
			func(ctx context.Context) (report.ReportModel, error) {
				return uc.build(ctx, candidateID)
			})
	} else {
		result, err = uc.build(ctx, candidateID)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		uc.metrics.RecordReportBuild(OutcomeFetchError, time.Since(start))
		uc.logger.Error("failed to build report",
			zap.String("candidate_id", candidateID),
			zap.Error(err))
		return report.ReportModel{}, err
	}

	span.SetAttributes(
		attribute.Int("report.rounds", len(result.GroupedByRound)),
		attribute.Int("report.sections", len(result.SectionScores)),
		attribute.Int("report.overall_score", result.CandidateInfo.OverallScore),
	)
	span.SetStatus(codes.Ok, "")
	uc.metrics.RecordReportBuild(OutcomeSuccess, time.Since(start))
	return result, nil
}

func (uc *ReportUsecase) build(ctx context.Context, candidateID string) (report.ReportModel, error) {
	profile, err := uc.source.FetchProfile(ctx, candidateID)
	if err != nil {
		return report.ReportModel{}, &ReportDataError{Err: err}
	}
	evals, err := uc.source.FetchCompletedEvaluations(ctx, candidateID)
	if err != nil {
		return report.ReportModel{}, &ReportDataError{Err: err}
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("evaluations.count", len(evals)))
	uc.logger.Debug("building report",
		zap.String("candidate_id", candidateID),
		zap.Bool("profile_found", profile != nil),
		zap.Int("evaluations", len(evals)))

	return report.Aggregate(report.CandidateInfoFromProfile(profile), report.RawEvaluationsFromModels(evals)), nil
}
