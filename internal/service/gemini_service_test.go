package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	calls int
	fn    func(call int) (*genai.GenerateContentResponse, error)
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	return f.fn(f.calls)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func newTestGemini(gen generator) *GeminiService {
	s := newGeminiService(gen, "gemini-test", zap.NewNop())
	s.BaseDelay = time.Millisecond
	s.MaxDelay = 5 * time.Millisecond
	return s
}

func TestGeminiService_SummarizeComments(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		gen := &fakeGenerator{fn: func(int) (*genai.GenerateContentResponse, error) {
			return textResponse("  Strong communicator.  "), nil
		}}

		summary, err := newTestGemini(gen).SummarizeComments(ctx, []string{"Clear answers"})

		require.NoError(t, err)
		assert.Equal(t, "Strong communicator.", summary)
		assert.Equal(t, 1, gen.calls)
	})

	t.Run("retries transient errors", func(t *testing.T) {
		gen := &fakeGenerator{fn: func(call int) (*genai.GenerateContentResponse, error) {
			if call < 3 {
				return nil, genai.APIError{Code: 503, Message: "overloaded"}
			}
			return textResponse("ok"), nil
		}}

		summary, err := newTestGemini(gen).SummarizeComments(ctx, []string{"x"})

		require.NoError(t, err)
		assert.Equal(t, "ok", summary)
		assert.Equal(t, 3, gen.calls)
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		gen := &fakeGenerator{fn: func(int) (*genai.GenerateContentResponse, error) {
			return nil, genai.APIError{Code: 400, Message: "bad request"}
		}}

		svc := newTestGemini(gen)
		_, err := svc.SummarizeComments(ctx, []string{"x"})

		assert.Error(t, err)
		assert.Equal(t, 1, gen.calls)
		assert.Equal(t, int32(1), svc.consecutiveErrors.Load())
	})

	t.Run("empty response", func(t *testing.T) {
		gen := &fakeGenerator{fn: func(int) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{}, nil
		}}

		_, err := newTestGemini(gen).SummarizeComments(ctx, []string{"x"})
		assert.Error(t, err)
	})

	t.Run("circuit opens after repeated failures", func(t *testing.T) {
		gen := &fakeGenerator{fn: func(int) (*genai.GenerateContentResponse, error) {
			return nil, genai.APIError{Code: 401}
		}}
		svc := newTestGemini(gen)

		for i := 0; i < 5; i++ {
			_, _ = svc.SummarizeComments(ctx, []string{"x"})
		}
		_, err := svc.SummarizeComments(ctx, []string{"x"})

		assert.ErrorIs(t, err, ErrCircuitOpen)
		assert.Equal(t, 5, gen.calls)
	})

	t.Run("circuit closes after cooldown once the upstream recovers", func(t *testing.T) {
		healthy := false
		gen := &fakeGenerator{fn: func(int) (*genai.GenerateContentResponse, error) {
			if healthy {
				return textResponse("recovered"), nil
			}
			return nil, genai.APIError{Code: 401}
		}}
		svc := newTestGemini(gen)
		clock := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return clock }

		for i := 0; i < 5; i++ {
			_, _ = svc.SummarizeComments(ctx, []string{"x"})
		}
		healthy = true

		clock = clock.Add(svc.CircuitCooldown - time.Second)
		_, err := svc.SummarizeComments(ctx, []string{"x"})
		assert.ErrorIs(t, err, ErrCircuitOpen)
		assert.Equal(t, 5, gen.calls)

		clock = clock.Add(2 * time.Second)
		summary, err := svc.SummarizeComments(ctx, []string{"x"})
		require.NoError(t, err)
		assert.Equal(t, "recovered", summary)
		assert.Equal(t, int32(0), svc.consecutiveErrors.Load())

		_, err = svc.SummarizeComments(ctx, []string{"x"})
		require.NoError(t, err)
		assert.Equal(t, 7, gen.calls)
	})

	t.Run("failed trial reopens the circuit", func(t *testing.T) {
		gen := &fakeGenerator{fn: func(int) (*genai.GenerateContentResponse, error) {
			return nil, genai.APIError{Code: 401}
		}}
		svc := newTestGemini(gen)
		clock := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return clock }

		for i := 0; i < 5; i++ {
			_, _ = svc.SummarizeComments(ctx, []string{"x"})
		}
		clock = clock.Add(svc.CircuitCooldown + time.Second)

		_, err := svc.SummarizeComments(ctx, []string{"x"})
		assert.NotErrorIs(t, err, ErrCircuitOpen)
		assert.Equal(t, 6, gen.calls)

		_, err = svc.SummarizeComments(ctx, []string{"x"})
		assert.ErrorIs(t, err, ErrCircuitOpen)
		assert.Equal(t, 6, gen.calls)
	})
}

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "rate limited", err: genai.APIError{Code: 429}, want: true},
		{name: "server error", err: genai.APIError{Code: 502}, want: true},
		{name: "forbidden", err: genai.APIError{Code: 403}, want: false},
		{name: "cancelled", err: context.Canceled, want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: false},
		{name: "connection reset", err: errors.New("read: connection reset by peer"), want: true},
		{name: "unknown", err: errors.New("boom"), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isRetryableError(tc.err))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	svc := newGeminiService(&fakeGenerator{}, "m", nil)

	seen := map[time.Duration]bool{}
	for i := 0; i < 50; i++ {
		first := svc.calculateBackoff(1)
		assert.GreaterOrEqual(t, first, 875*time.Millisecond)
		assert.LessOrEqual(t, first, 1125*time.Millisecond)
		seen[first] = true

		second := svc.calculateBackoff(2)
		assert.GreaterOrEqual(t, second, 1750*time.Millisecond)
		assert.LessOrEqual(t, second, 2250*time.Millisecond)

		capped := svc.calculateBackoff(20)
		assert.GreaterOrEqual(t, capped, 78750*time.Millisecond)
		assert.LessOrEqual(t, capped, 90*time.Second)
	}
	assert.Greater(t, len(seen), 1, "jitter should spread retry delays")
}
