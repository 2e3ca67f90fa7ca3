package usecase

import (
	"context"
	"errors"
	"time"

	"site-analytics-service/internal/leads/core/domain"
	"site-analytics-service/internal/leads/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidLead      = errors.New("invalid lead")
	ErrInvalidStatus    = errors.New("invalid lead status")
	ErrInvalidReplyTime = errors.New("invalid reply time")
	ErrLeadNotFound     = errors.New("lead not found")
)

var validate = validator.New()

type ManageLeadsUseCase struct {
	repo ports.LeadRepositoryPort
}

func NewManageLeadsUseCase(repo ports.LeadRepositoryPort) *ManageLeadsUseCase {
	return &ManageLeadsUseCase{repo: repo}
}

type CreateLeadInput struct {
	Source          string
	Medium          string
	Campaign        string
	ServiceInterest string
	SessionID       string `validate:"omitempty,uuid4"`
	ClickID         string
	Phone           string
	Email           string `validate:"omitempty,email"`
}

// CreateLead opens a pipeline record in status "new".
func (uc *ManageLeadsUseCase) CreateLead(ctx context.Context, in CreateLeadInput) (string, error) {
	if err := validate.Struct(in); err != nil {
		return "", ErrInvalidLead
	}

	l := &domain.Lead{
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		Status:          domain.StatusNew,
		Source:          in.Source,
		Medium:          in.Medium,
		Campaign:        in.Campaign,
		ServiceInterest: in.ServiceInterest,
		SessionID:       in.SessionID,
		ClickID:         in.ClickID,
		Phone:           in.Phone,
		Email:           in.Email,
	}

	if err := uc.repo.InsertLead(ctx, l); err != nil {
		return "", err
	}

	return l.ID, nil
}

type AdvanceStatusInput struct {
	LeadID string `validate:"required,uuid4"`
	Status string `validate:"required"`
}

// AdvanceStatus moves a lead through the pipeline. closed_at is set exactly
// when the new status is won or lost, and cleared when a closed lead is
// reopened.
func (uc *ManageLeadsUseCase) AdvanceStatus(ctx context.Context, in AdvanceStatusInput) error {
	if err := validate.Struct(in); err != nil {
		return ErrInvalidLead
	}
	if !domain.KnownStatus(in.Status) {
		return ErrInvalidStatus
	}

	var closedAt *time.Time
	if domain.Closed(in.Status) {
		now := time.Now().UTC()
		closedAt = &now
	}

	found, err := uc.repo.UpdateStatus(ctx, in.LeadID, in.Status, closedAt)
	if err != nil {
		return err
	}
	if !found {
		return ErrLeadNotFound
	}

	return nil
}

type RecordReplyTimeInput struct {
	LeadID  string `validate:"required,uuid4"`
	Minutes float64
}

func (uc *ManageLeadsUseCase) RecordReplyTime(ctx context.Context, in RecordReplyTimeInput) error {
	if err := validate.Struct(in); err != nil {
		return ErrInvalidLead
	}
	if in.Minutes < 0 {
		return ErrInvalidReplyTime
	}

	found, err := uc.repo.SetReplyTime(ctx, in.LeadID, in.Minutes)
	if err != nil {
		return err
	}
	if !found {
		return ErrLeadNotFound
	}

	return nil
}
