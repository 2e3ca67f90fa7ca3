package ports

import (
	"context"

	"site-analytics-service/internal/tracking/core/domain"
)

type TrackingRepositoryPort interface {
	InsertEvent(ctx context.Context, e *domain.Event) error

	// UpsertSession creates the session on first page load or refreshes its
	// attributes on a repeat upsert of the same id.
	UpsertSession(ctx context.Context, s *domain.Session) error

	// IncrementPageViews:
	//   found = true,  err = nil -> counter bumped
	//   found = false, err = nil -> unknown session id
	IncrementPageViews(ctx context.Context, sessionID string) (found bool, err error)
}
