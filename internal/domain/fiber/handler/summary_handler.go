package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/vrecruit/recruit-backend/internal/dto"
	"github.com/vrecruit/recruit-backend/internal/util"
)

type CommentSummarizer interface {
	Summarize(ctx context.Context, comments []string) string
}

type SummaryHandler struct {
	uc CommentSummarizer
}

func NewSummaryHandler(uc CommentSummarizer) *SummaryHandler {
	return &SummaryHandler{uc: uc}
}

func (h *SummaryHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/summarize", h.Summarize)
	router.Get("/test", h.Test)
}

func (h *SummaryHandler) Summarize(c *fiber.Ctx) error {
	var req dto.SummarizeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "Invalid JSON payload received.",
			}, err)
		}
	}
	return c.JSON(fiber.Map{"summary": h.uc.Summarize(c.UserContext(), req.Comments)})
}

// Test is a liveness check kept for the dashboard's connectivity check.
func (h *SummaryHandler) Test(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Server is working!"})
}
