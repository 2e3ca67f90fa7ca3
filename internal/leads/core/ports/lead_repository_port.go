package ports

import (
	"context"
	"time"

	"site-analytics-service/internal/leads/core/domain"
)

type LeadRepositoryPort interface {
	InsertLead(ctx context.Context, l *domain.Lead) error

	// UpdateStatus moves a lead to status, setting or clearing closed_at:
	//   found = true,  err = nil -> updated
	//   found = false, err = nil -> unknown lead id
	UpdateStatus(ctx context.Context, id, status string, closedAt *time.Time) (found bool, err error)

	// SetReplyTime records the minutes until first response.
	SetReplyTime(ctx context.Context, id string, minutes float64) (found bool, err error)
}
