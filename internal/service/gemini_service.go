package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/vrecruit/recruit-backend/internal/config"
)

var ErrCircuitOpen = errors.New("circuit breaker open")

type GeminiServiceInterface interface {
	SummarizeComments(ctx context.Context, comments []string) (string, error)
}

// generator is the slice of the genai client the service needs.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiService struct {
	models            generator
	model             string
	logger            *zap.Logger
	MaxRetries        int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	RequestTimeout    time.Duration
	// CircuitCooldown is how long the breaker stays open before one trial call is let through.
	CircuitCooldown   time.Duration
	consecutiveErrors atomic.Int32
	circuitBreakerMax int32
	openedAt          atomic.Int64
	trialInFlight     atomic.Bool
	now               func() time.Time
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newGeminiService(client.Models, cfg.Model, logger), nil
}

func newGeminiService(models generator, model string, logger *zap.Logger) *GeminiService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiService{
		models:            models,
		model:             model,
		logger:            logger,
		MaxRetries:        3,
		BaseDelay:         time.Second,
		MaxDelay:          90 * time.Second,
		RequestTimeout:    90 * time.Second,
		CircuitCooldown:   30 * time.Second,
		circuitBreakerMax: 5,
		now:               time.Now,
	}
}

// SummarizeComments condenses interviewer comments into a short hiring summary.
func (s *GeminiService) SummarizeComments(ctx context.Context, comments []string) (string, error) {
	var sb strings.Builder
	sb.WriteString("You are an experienced recruiter. Summarize the following interview feedback in at most four sentences. ")
	sb.WriteString("Mention core strengths, areas for development and an overall impression. Respond with plain text only.\n\n")
	for i, c := range comments {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, strings.TrimSpace(c))
	}

	result, err := s.GenerateContent(ctx, sb.String())
	if err != nil {
		return "", err
	}
	summary := strings.TrimSpace(result.Text())
	if summary == "" {
		return "", fmt.Errorf("empty summary returned by %s", s.model)
	}
	return summary, nil
}

func (s *GeminiService) GenerateContent(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
	if s.model == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}

	if n := s.consecutiveErrors.Load(); n >= s.circuitBreakerMax {
		opened := time.Unix(0, s.openedAt.Load())
		if s.now().Sub(opened) < s.CircuitCooldown || !s.trialInFlight.CompareAndSwap(false, true) {
			return nil, fmt.Errorf("%w: too many consecutive errors (%d)", ErrCircuitOpen, n)
		}
		defer s.trialInFlight.Store(false)
		s.logger.Info("circuit breaker half-open, sending trial request", zap.Int32("consecutive_errors", n))
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.logger.Info("retrying GenerateContent",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", s.MaxRetries),
				zap.Duration("delay", delay))

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return nil, fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		genConfig := &genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.2)),
		}

		result, err := s.models.GenerateContent(timeoutCtx, s.model, genai.Text(prompt), genConfig)
		if err == nil {
			s.consecutiveErrors.Store(0)
			if err := validateGenerateResponse(result); err != nil {
				return nil, fmt.Errorf("invalid response: %w", err)
			}
			return result, nil
		}

		lastErr = err

		if !isRetryableError(err) {
			s.logger.Warn("non-retryable gemini error", zap.Error(err))
			s.recordFailure()
			return nil, fmt.Errorf("generate content failed: %w", err)
		}

		s.logger.Warn("retryable gemini error", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	s.recordFailure()
	return nil, fmt.Errorf("max retries (%d) exceeded for GenerateContent: %w", s.MaxRetries, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))

	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}

	// +/-12.5% jitter, still capped at MaxDelay
	jitter := time.Duration(float64(delay) * 0.25)
	delay = delay - jitter/2 + time.Duration(rand.Float64()*float64(jitter))
	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}

	return delay
}

// recordFailure counts a failed call and (re)starts the cooldown once the breaker is open.
func (s *GeminiService) recordFailure() {
	if s.consecutiveErrors.Add(1) >= s.circuitBreakerMax {
		s.openedAt.Store(s.now().UnixNano())
	}
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		default:
			return false
		}
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF") {
		return true
	}

	return false
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}
	return nil
}
