package fiber

import (
	"context"
	"errors"
	"net/http"

	"site-analytics-service/internal/tracking/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type TrackEventUseCase interface {
	Execute(ctx context.Context, in usecase.TrackEventInput) (string, error)
	BulkTrackEvents(ctx context.Context, in usecase.BulkTrackEventsInput) (usecase.BulkTrackEventsResult, error)
	UpsertSession(ctx context.Context, in usecase.UpsertSessionInput) (string, error)
	IncrementPageViews(ctx context.Context, sessionID string) error
}

type TrackingHandler struct {
	trackUC TrackEventUseCase
}

func NewTrackingHandler(trackUC TrackEventUseCase) *TrackingHandler {
	return &TrackingHandler{trackUC: trackUC}
}

// TrackEvent godoc
// @Summary Track an event
// @Description Appends a single instrumentation event to a session
// @Tags Tracking
// @Accept json
// @Produce json
// @Param request body TrackEventRequest true "Event payload"
// @Success 201 {object} TrackEventResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /track [post]
func (h *TrackingHandler) TrackEvent(c *fiber.Ctx) error {
	var req TrackEventRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	eventID, err := h.trackUC.Execute(c.UserContext(), usecase.TrackEventInput{
		EventName: req.EventName,
		SessionID: req.SessionID,
		UserID:    req.UserID,
		Timestamp: req.Timestamp,
		Props:     req.Props,
	})
	if err != nil {
		return trackingError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(TrackEventResponse{
		Status:  "created",
		EventID: eventID,
	})
}

// BulkTrackEvents godoc
// @Summary Bulk track events
// @Description Accepts a list of events and appends them individually
// @Tags Tracking
// @Accept json
// @Produce json
// @Param request body BulkTrackEventsRequest true "Bulk event payload"
// @Success 201 {object} BulkTrackEventsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /track/bulk [post]
func (h *TrackingHandler) BulkTrackEvents(c *fiber.Ctx) error {
	var req BulkTrackEventsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	if len(req.Events) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "events_list_required",
		})
	}

	inputs := make([]usecase.TrackEventInput, len(req.Events))
	for i, e := range req.Events {
		inputs[i] = usecase.TrackEventInput{
			EventName: e.EventName,
			SessionID: e.SessionID,
			UserID:    e.UserID,
			Timestamp: e.Timestamp,
			Props:     e.Props,
		}
	}

	result, err := h.trackUC.BulkTrackEvents(
		c.UserContext(),
		usecase.BulkTrackEventsInput{Events: inputs},
	)
	if err != nil {
		return trackingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(BulkTrackEventsResponse{
		Created: result.Created,
	})
}

// UpsertSession godoc
// @Summary Start or refresh a session
// @Description Creates the visit record on first page load; repeats refresh attributes
// @Tags Tracking
// @Accept json
// @Produce json
// @Param request body UpsertSessionRequest true "Session payload"
// @Success 200 {object} UpsertSessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sessions [post]
func (h *TrackingHandler) UpsertSession(c *fiber.Ctx) error {
	var req UpsertSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	sessionID, err := h.trackUC.UpsertSession(c.UserContext(), usecase.UpsertSessionInput{
		SessionID:   req.SessionID,
		UserID:      req.UserID,
		DeviceType:  req.DeviceType,
		UTMSource:   req.UTMSource,
		UTMMedium:   req.UTMMedium,
		UTMCampaign: req.UTMCampaign,
		UTMContent:  req.UTMContent,
		UTMTerm:     req.UTMTerm,
		LandingPage: req.LandingPage,
		Referrer:    req.Referrer,
		Country:     req.Country,
		IsReturning: req.IsReturning,
	})
	if err != nil {
		return trackingError(c, err)
	}

	return c.JSON(UpsertSessionResponse{SessionID: sessionID})
}

// IncrementPageViews godoc
// @Summary Increment session page views
// @Description Bumps the page-view counter of an existing session
// @Tags Tracking
// @Produce json
// @Param id path string true "Session id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sessions/{id}/page-view [post]
func (h *TrackingHandler) IncrementPageViews(c *fiber.Ctx) error {
	if err := h.trackUC.IncrementPageViews(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, usecase.ErrSessionNotFound) {
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Error: "session_not_found",
			})
		}
		return trackingError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

func trackingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidEvent),
		errors.Is(err, usecase.ErrInvalidSession),
		errors.Is(err, usecase.ErrFutureTime):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_payload",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
