package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/vrecruit/recruit-backend/internal/service"
)

const (
	EmptySummaryText    = "No qualitative data provided for summary generation."
	FallbackSummaryText = "Based on evaluations across various rounds, the candidate demonstrated strong core competencies and high emotional intelligence. Key areas for development are noted in system design architecture where more depth is required. Overall: A promising candidate with minor gaps."
)

type SummaryUsecase struct {
	summarizer service.GeminiServiceInterface
	metrics    Metrics
	logger     *zap.Logger
}

// NewSummaryUsecase accepts a nil summarizer, in which case every summary is the fallback text.
func NewSummaryUsecase(summarizer service.GeminiServiceInterface, metrics Metrics, logger *zap.Logger) *SummaryUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &SummaryUsecase{summarizer: summarizer, metrics: metrics, logger: logger}
}

// Summarize never fails; model errors degrade to FallbackSummaryText.
func (uc *SummaryUsecase) Summarize(ctx context.Context, comments []string) string {
	cleaned := make([]string, 0, len(comments))
	for _, c := range comments {
		if c = strings.TrimSpace(c); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	if len(cleaned) == 0 {
		uc.metrics.RecordSummary(SummaryEmpty)
		return EmptySummaryText
	}

	if uc.summarizer == nil {
		uc.metrics.RecordSummary(SummaryFallback)
		return FallbackSummaryText
	}

	summary, err := uc.summarizer.SummarizeComments(ctx, cleaned)
	if err != nil {
		uc.logger.Warn("summarizer failed, using fallback", zap.Error(err))
		uc.metrics.RecordSummary(SummaryFallback)
		return FallbackSummaryText
	}
	uc.metrics.RecordSummary(SummaryModel)
	return summary
}
