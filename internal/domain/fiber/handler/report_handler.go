package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/vrecruit/recruit-backend/internal/render"
	"github.com/vrecruit/recruit-backend/internal/report"
	"github.com/vrecruit/recruit-backend/internal/usecase"
	"github.com/vrecruit/recruit-backend/internal/util"
)

type ReportBuilder interface {
	BuildReport(ctx context.Context, candidateID string) (report.ReportModel, error)
}

type ReportHandler struct {
	uc ReportBuilder
}

func NewReportHandler(uc ReportBuilder) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/report", h.PDF)
	router.Get("/report/excel", h.Excel)
	router.Get("/report/data", h.Data)
}

func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	id, m, err := h.load(c)
	if err != nil {
		return reportError(c, err)
	}

	out, err := render.PDF(m, id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "PDF generation failed: " + err.Error(),
		}, err)
	}
	return sendAttachment(c, out, fmt.Sprintf("VRecruitment_Report_%s.pdf", id), "application/pdf")
}

func (h *ReportHandler) Excel(c *fiber.Ctx) error {
	id, m, err := h.load(c)
	if err != nil {
		return reportError(c, err)
	}

	out, err := render.CSV(m, id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "CSV generation failed: " + err.Error(),
		}, err)
	}
	return sendAttachment(c, out, fmt.Sprintf("VRecruitment_Grouped_Data_%s.csv", id), "text/csv; charset=utf-8")
}

func (h *ReportHandler) Data(c *fiber.Ctx) error {
	_, m, err := h.load(c)
	if err != nil {
		return reportError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Report generated",
		Data:    m,
	})
}

func (h *ReportHandler) load(c *fiber.Ctx) (string, report.ReportModel, error) {
	id := c.Query("candidate_id")
	m, err := h.uc.BuildReport(c.UserContext(), id)
	return id, m, err
}

func reportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, usecase.ErrInvalidCandidate) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Candidate ID is required.",
		})
	}

	detail := err.Error()
	var dataErr *usecase.ReportDataError
	if errors.As(err, &dataErr) {
		detail = dataErr.Err.Error()
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusInternalServerError,
		Message: "Error fetching report data: " + detail,
	}, err)
}

func sendAttachment(c *fiber.Ctx, body []byte, filename, contentType string) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Status(fiber.StatusOK).Send(body)
}
