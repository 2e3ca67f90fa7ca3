package ports

import (
	"context"

	"site-analytics-service/internal/analytics/core/domain"
	"site-analytics-service/internal/analytics/core/timerange"
)

// EventFilter narrows an event fetch to a window and, optionally, event names.
type EventFilter struct {
	Range timerange.Range
	Names []string // event_name IN (...); empty means all names
}

type SessionReaderPort interface {
	ListSessions(ctx context.Context, r timerange.Range) ([]domain.SessionRecord, error)
}

type EventReaderPort interface {
	ListEvents(ctx context.Context, f EventFilter) ([]domain.EventRecord, error)
}

type LeadReaderPort interface {
	// ListLeads returns leads created inside the window.
	ListLeads(ctx context.Context, r timerange.Range) ([]domain.LeadRecord, error)
}

type PostReaderPort interface {
	// TitlesBySlug resolves display titles for the given slugs. Missing slugs
	// are simply absent from the result.
	TitlesBySlug(ctx context.Context, slugs []string) (map[string]string, error)
}
