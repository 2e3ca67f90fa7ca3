package usecase_test

import (
	"context"

	"site-analytics-service/internal/analytics/core/domain"
	"site-analytics-service/internal/analytics/core/ports"
	"site-analytics-service/internal/analytics/core/timerange"
)

// Fake reader ports shared by the aggregator tests.

type fakeSessionReader struct {
	ListFn func(ctx context.Context, r timerange.Range) ([]domain.SessionRecord, error)
	called bool
}

func (f *fakeSessionReader) ListSessions(ctx context.Context, r timerange.Range) ([]domain.SessionRecord, error) {
	f.called = true
	if f.ListFn != nil {
		return f.ListFn(ctx, r)
	}
	return nil, nil
}

type fakeEventReader struct {
	ListFn func(ctx context.Context, flt ports.EventFilter) ([]domain.EventRecord, error)
	called bool
}

func (f *fakeEventReader) ListEvents(ctx context.Context, flt ports.EventFilter) ([]domain.EventRecord, error) {
	f.called = true
	if f.ListFn != nil {
		return f.ListFn(ctx, flt)
	}
	return nil, nil
}

// byName routes a fake event fetch on the first requested event name.
func byName(routes map[string][]domain.EventRecord) func(ctx context.Context, flt ports.EventFilter) ([]domain.EventRecord, error) {
	return func(ctx context.Context, flt ports.EventFilter) ([]domain.EventRecord, error) {
		if len(flt.Names) == 0 {
			return nil, nil
		}
		return routes[flt.Names[0]], nil
	}
}

type fakeLeadReader struct {
	ListFn func(ctx context.Context, r timerange.Range) ([]domain.LeadRecord, error)
	called bool
}

func (f *fakeLeadReader) ListLeads(ctx context.Context, r timerange.Range) ([]domain.LeadRecord, error) {
	f.called = true
	if f.ListFn != nil {
		return f.ListFn(ctx, r)
	}
	return nil, nil
}

type fakePostReader struct {
	TitlesFn func(ctx context.Context, slugs []string) (map[string]string, error)
}

func (f *fakePostReader) TitlesBySlug(ctx context.Context, slugs []string) (map[string]string, error) {
	if f.TitlesFn != nil {
		return f.TitlesFn(ctx, slugs)
	}
	return map[string]string{}, nil
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
