package usecase

import (
	"context"
	"errors"
	"time"

	"site-analytics-service/internal/tracking/core/domain"
	"site-analytics-service/internal/tracking/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidEvent    = errors.New("invalid event")
	ErrInvalidSession  = errors.New("invalid session")
	ErrFutureTime      = errors.New("timestamp cannot be in the future")
	ErrSessionNotFound = errors.New("session not found")
)

var validate = validator.New()

type TrackEventUseCase struct {
	repo ports.TrackingRepositoryPort
}

func NewTrackEventUseCase(repo ports.TrackingRepositoryPort) *TrackEventUseCase {
	return &TrackEventUseCase{repo: repo}
}

type TrackEventInput struct {
	EventName string `validate:"required"`
	SessionID string `validate:"required,uuid4"`
	UserID    string
	Timestamp int64 // unix seconds; 0 means "now"
	Props     map[string]any
}

func (uc *TrackEventUseCase) Execute(ctx context.Context, in TrackEventInput) (string, error) {
	if err := validate.Struct(in); err != nil {
		return "", ErrInvalidEvent
	}

	now := time.Now().UTC()
	occurredAt := now
	if in.Timestamp != 0 {
		if in.Timestamp > now.Unix() {
			return "", ErrFutureTime
		}
		occurredAt = time.Unix(in.Timestamp, 0).UTC()
	}

	if in.Props == nil {
		in.Props = map[string]any{}
	}

	e := &domain.Event{
		ID:         uuid.NewString(),
		EventName:  in.EventName,
		SessionID:  in.SessionID,
		UserID:     in.UserID,
		OccurredAt: occurredAt,
		Props:      in.Props,
	}

	if err := uc.repo.InsertEvent(ctx, e); err != nil {
		return "", err
	}

	return e.ID, nil
}

type BulkTrackEventsInput struct {
	Events []TrackEventInput
}

type BulkTrackEventsResult struct {
	Created int
}

func (uc *TrackEventUseCase) BulkTrackEvents(ctx context.Context, in BulkTrackEventsInput) (BulkTrackEventsResult, error) {
	var res BulkTrackEventsResult

	for _, ev := range in.Events {
		if err := validate.Struct(ev); err != nil {
			return res, ErrInvalidEvent
		}
	}

	for _, ev := range in.Events {
		if _, err := uc.Execute(ctx, ev); err != nil {
			return res, err
		}
		res.Created++
	}

	return res, nil
}

type UpsertSessionInput struct {
	SessionID   string `validate:"omitempty,uuid4"`
	UserID      string
	DeviceType  string `validate:"omitempty,oneof=mobile desktop tablet"`
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
	UTMContent  string
	UTMTerm     string
	LandingPage string
	Referrer    string
	Country     string
	IsReturning bool
}

// UpsertSession records a visit, minting an id when the client did not send one.
func (uc *TrackEventUseCase) UpsertSession(ctx context.Context, in UpsertSessionInput) (string, error) {
	if err := validate.Struct(in); err != nil {
		return "", ErrInvalidSession
	}

	id := in.SessionID
	if id == "" {
		id = uuid.NewString()
	}

	s := &domain.Session{
		ID:          id,
		UserID:      in.UserID,
		StartedAt:   time.Now().UTC(),
		DeviceType:  in.DeviceType,
		UTMSource:   in.UTMSource,
		UTMMedium:   in.UTMMedium,
		UTMCampaign: in.UTMCampaign,
		UTMContent:  in.UTMContent,
		UTMTerm:     in.UTMTerm,
		LandingPage: in.LandingPage,
		Referrer:    in.Referrer,
		Country:     in.Country,
		IsReturning: in.IsReturning,
	}

	if err := uc.repo.UpsertSession(ctx, s); err != nil {
		return "", err
	}

	return id, nil
}

func (uc *TrackEventUseCase) IncrementPageViews(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidSession
	}

	found, err := uc.repo.IncrementPageViews(ctx, sessionID)
	if err != nil {
		return err
	}
	if !found {
		return ErrSessionNotFound
	}

	return nil
}
