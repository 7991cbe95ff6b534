package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vrecruit/recruit-backend/internal/usecase"
	"github.com/vrecruit/recruit-backend/internal/usecase/mocks"
)

func TestSummaryUsecase_Summarize(t *testing.T) {
	ctx := context.Background()

	t.Run("no comments", func(t *testing.T) {
		metrics := &mocks.RecordingMetrics{}
		uc := usecase.NewSummaryUsecase(&mocks.MockSummarizer{
			SummarizeCommentsFunc: func(ctx context.Context, c []string) (string, error) {
				t.Fatal("summarizer must not be called without comments")
				return "", nil
			},
		}, metrics, nil)

		assert.Equal(t, usecase.EmptySummaryText, uc.Summarize(ctx, nil))
		assert.Equal(t, usecase.EmptySummaryText, uc.Summarize(ctx, []string{" ", ""}))
		assert.Equal(t, []string{usecase.SummaryEmpty, usecase.SummaryEmpty}, metrics.Summaries)
	})

	t.Run("without a model", func(t *testing.T) {
		uc := usecase.NewSummaryUsecase(nil, nil, nil)

		assert.Equal(t, usecase.FallbackSummaryText, uc.Summarize(ctx, []string{"Good"}))
	})

	t.Run("model summary", func(t *testing.T) {
		var received []string
		metrics := &mocks.RecordingMetrics{}
		uc := usecase.NewSummaryUsecase(&mocks.MockSummarizer{
			SummarizeCommentsFunc: func(ctx context.Context, c []string) (string, error) {
				received = c
				return "Solid candidate.", nil
			},
		}, metrics, nil)

		got := uc.Summarize(ctx, []string{" Good ", "", "Needs depth"})

		assert.Equal(t, "Solid candidate.", got)
		assert.Equal(t, []string{"Good", "Needs depth"}, received)
		assert.Equal(t, []string{usecase.SummaryModel}, metrics.Summaries)
	})

	t.Run("model failure falls back", func(t *testing.T) {
		uc := usecase.NewSummaryUsecase(&mocks.MockSummarizer{
			SummarizeCommentsFunc: func(ctx context.Context, c []string) (string, error) {
				return "", errors.New("quota exceeded")
			},
		}, nil, nil)

		assert.Equal(t, usecase.FallbackSummaryText, uc.Summarize(ctx, []string{"Good"}))
	})
}
