package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vrecruit/recruit-backend/internal/dto"
	"github.com/vrecruit/recruit-backend/internal/middleware"
	"github.com/vrecruit/recruit-backend/internal/service"
	"github.com/vrecruit/recruit-backend/internal/usecase"
	"github.com/vrecruit/recruit-backend/internal/util"
)

type CandidateCreator interface {
	AddCandidate(ctx context.Context, req dto.AddCandidateRequest) (string, error)
}

type CandidateHandler struct {
	uc CandidateCreator
}

func NewCandidateHandler(uc CandidateCreator) *CandidateHandler {
	return &CandidateHandler{uc: uc}
}

func (h *CandidateHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/candidate/add", middleware.RateLimiter(10, time.Minute), h.Add)
}

func (h *CandidateHandler) Add(c *fiber.Ctx) error {
	var req dto.AddCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid JSON payload received. Body is empty or malformed.",
		}, err)
	}

	uid, err := h.uc.AddCandidate(c.UserContext(), req)
	if err != nil {
		return candidateError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"uid":     uid,
		"message": "Candidate created and profile saved successfully.",
	})
}

func candidateError(c *fiber.Ctx, err error) error {
	var formErr *util.FormError
	if errors.As(err, &formErr) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: formErr.Message,
			Details: formErr.Errors,
		})
	}
	if errors.Is(err, usecase.ErrMissingName) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "First name and surname are required.",
		})
	}

	var upstream *service.UpstreamError
	hasUpstream := errors.As(err, &upstream)
	details := func() any {
		if !hasUpstream {
			return nil
		}
		return fiber.Map{"supabase_error": upstream.Body}
	}

	switch {
	case errors.Is(err, usecase.ErrAuthUserCreate):
		code := fiber.StatusBadGateway
		if hasUpstream && upstream.Status >= fiber.StatusBadRequest {
			code = upstream.Status
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    code,
			Message: "Failed to create authentication user. Check Supabase URL/Key.",
			Details: details(),
		}, err)
	case errors.Is(err, usecase.ErrProfileSave):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "Failed to save candidate profile. Check Supabase RLS on candidate_profiles table.",
			Details: details(),
		}, err)
	default:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "An unexpected server error occurred.",
		}, err)
	}
}
