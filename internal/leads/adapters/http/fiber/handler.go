package fiber

import (
	"context"
	"errors"
	"net/http"

	"site-analytics-service/internal/leads/core/domain"
	"site-analytics-service/internal/leads/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type ManageLeadsUseCase interface {
	CreateLead(ctx context.Context, in usecase.CreateLeadInput) (string, error)
	AdvanceStatus(ctx context.Context, in usecase.AdvanceStatusInput) error
	RecordReplyTime(ctx context.Context, in usecase.RecordReplyTimeInput) error
}

type LeadHandler struct {
	leadsUC ManageLeadsUseCase
}

func NewLeadHandler(leadsUC ManageLeadsUseCase) *LeadHandler {
	return &LeadHandler{leadsUC: leadsUC}
}

// CreateLead godoc
// @Summary Create a lead
// @Description Opens a pipeline record in status "new"
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body CreateLeadRequest true "Lead payload"
// @Success 201 {object} CreateLeadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /leads [post]
func (h *LeadHandler) CreateLead(c *fiber.Ctx) error {
	var req CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	leadID, err := h.leadsUC.CreateLead(c.UserContext(), usecase.CreateLeadInput{
		Source:          req.Source,
		Medium:          req.Medium,
		Campaign:        req.Campaign,
		ServiceInterest: req.ServiceInterest,
		SessionID:       req.SessionID,
		ClickID:         req.ClickID,
		Phone:           req.Phone,
		Email:           req.Email,
	})
	if err != nil {
		return leadError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(CreateLeadResponse{
		LeadID: leadID,
		Status: domain.StatusNew,
	})
}

// AdvanceStatus godoc
// @Summary Advance a lead's status
// @Description Moves a lead through the pipeline; won/lost stamp closed_at
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead id"
// @Param request body AdvanceStatusRequest true "New status"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /leads/{id}/status [patch]
func (h *LeadHandler) AdvanceStatus(c *fiber.Ctx) error {
	var req AdvanceStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	err := h.leadsUC.AdvanceStatus(c.UserContext(), usecase.AdvanceStatusInput{
		LeadID: c.Params("id"),
		Status: req.Status,
	})
	if err != nil {
		return leadError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

// RecordReplyTime godoc
// @Summary Record reply time
// @Description Stores the minutes between first contact and first response
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead id"
// @Param request body RecordReplyTimeRequest true "Reply time"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /leads/{id}/reply-time [patch]
func (h *LeadHandler) RecordReplyTime(c *fiber.Ctx) error {
	var req RecordReplyTimeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	err := h.leadsUC.RecordReplyTime(c.UserContext(), usecase.RecordReplyTimeInput{
		LeadID:  c.Params("id"),
		Minutes: req.Minutes,
	})
	if err != nil {
		return leadError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

func leadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrLeadNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error: "lead_not_found",
		})
	case errors.Is(err, usecase.ErrInvalidLead),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidReplyTime):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_lead",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
