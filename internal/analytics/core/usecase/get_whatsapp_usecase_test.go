package usecase_test

import (
	"context"
	"errors"
	"testing"

	"site-analytics-service/internal/analytics/core/domain"
	"site-analytics-service/internal/analytics/core/timerange"
	"site-analytics-service/internal/analytics/core/usecase"
)

func redirect(id, source, service string) domain.EventRecord {
	props := domain.Props{}
	if source != "" {
		props["utm_source"] = source
	}
	if service != "" {
		props["service"] = service
	}
	return domain.EventRecord{
		ID:        id,
		EventName: domain.EventWhatsAppClick,
		SessionID: "s-" + id,
		Props:     props,
	}
}

// ------------------------------------------------------------
// SOURCE AND SERVICE BREAKDOWN
// ------------------------------------------------------------
func TestGetWhatsApp_Breakdowns(t *testing.T) {
	events := &fakeEventReader{
		ListFn: byName(map[string][]domain.EventRecord{
			domain.EventWhatsAppClick: {
				redirect("e1", "google", "seo"),
				redirect("e2", "google", ""),
				redirect("e3", "", "ads"),
			},
		}),
	}

	uc := usecase.NewGetWhatsAppUseCase(events, &fakeLeadReader{})

	out, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.TotalLeads != 3 {
		t.Fatalf("expected 3 leads, got %d", out.TotalLeads)
	}
	if out.LeadsBySource["google"] != 2 || out.LeadsBySource["direct"] != 1 {
		t.Fatalf("unexpected source breakdown: %+v", out.LeadsBySource)
	}
	if out.LeadsByService["seo"] != 1 || out.LeadsByService["ads"] != 1 || out.LeadsByService["general"] != 1 {
		t.Fatalf("unexpected service breakdown: %+v", out.LeadsByService)
	}
}

// ------------------------------------------------------------
// REPLY TIME BUCKETS: 15 and 60 are inclusive bounds
// ------------------------------------------------------------
func TestGetWhatsApp_ReplyTimeBuckets(t *testing.T) {
	leads := &fakeLeadReader{
		ListFn: func(ctx context.Context, r timerange.Range) ([]domain.LeadRecord, error) {
			return []domain.LeadRecord{
				{ID: "l1", ReplyTimeMinutes: floatPtr(5)},
				{ID: "l2", ReplyTimeMinutes: floatPtr(15)}, // inclusive
				{ID: "l3", ReplyTimeMinutes: floatPtr(30)},
				{ID: "l4", ReplyTimeMinutes: floatPtr(60)}, // inclusive
				{ID: "l5", ReplyTimeMinutes: floatPtr(61)},
				{ID: "l6"}, // never replied, stays out of the stats
			}, nil
		},
	}

	uc := usecase.NewGetWhatsAppUseCase(&fakeEventReader{}, leads)

	out, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rt := out.ReplyTime
	if rt.Under15Min != 2 {
		t.Fatalf("expected 2 under 15min, got %d", rt.Under15Min)
	}
	if rt.Under1Hour != 4 {
		t.Fatalf("expected 4 under 1h (inclusive of under-15), got %d", rt.Under1Hour)
	}
	if rt.Over1Hour != 1 {
		t.Fatalf("expected 1 over 1h, got %d", rt.Over1Hour)
	}
	if rt.Between15And60 != 2 {
		t.Fatalf("expected derived 15-60 band of 2, got %d", rt.Between15And60)
	}
	// upper median of [5, 15, 30, 60, 61]
	if rt.Median != 30 {
		t.Fatalf("expected median 30, got %f", rt.Median)
	}
}

// ------------------------------------------------------------
// CONVERSION BY SOURCE joins redirects with lead records
// ------------------------------------------------------------
func TestGetWhatsApp_ConversionBySource(t *testing.T) {
	events := &fakeEventReader{
		ListFn: byName(map[string][]domain.EventRecord{
			domain.EventWhatsAppClick: {
				redirect("e1", "google", ""),
				redirect("e2", "google", ""),
			},
		}),
	}
	leads := &fakeLeadReader{
		ListFn: func(ctx context.Context, r timerange.Range) ([]domain.LeadRecord, error) {
			return []domain.LeadRecord{
				{ID: "l1", Status: domain.StatusWon, Source: strPtr("google")},
				{ID: "l2", Status: domain.StatusQualified, Source: strPtr("google")},
				{ID: "l3", Status: domain.StatusNew, Source: strPtr("google")},
				{ID: "l4", Status: domain.StatusWon, Source: strPtr("bing")}, // different source
			}, nil
		},
	}

	uc := usecase.NewGetWhatsAppUseCase(events, leads)

	out, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	conv, ok := out.ConversionBySource["google"]
	if !ok {
		t.Fatalf("expected google conversion entry, got %+v", out.ConversionBySource)
	}
	if conv.Leads != 2 {
		t.Fatalf("expected 2 redirect leads, got %d", conv.Leads)
	}
	if conv.Qualified != 2 {
		t.Fatalf("expected 2 qualified, got %d", conv.Qualified)
	}
	if conv.Closed != 1 {
		t.Fatalf("expected 1 closed, got %d", conv.Closed)
	}
}

// ------------------------------------------------------------
// READER ERROR PROPAGATION
// ------------------------------------------------------------
func TestGetWhatsApp_ReaderError(t *testing.T) {
	leads := &fakeLeadReader{
		ListFn: func(ctx context.Context, r timerange.Range) ([]domain.LeadRecord, error) {
			return nil, errors.New("db failure")
		},
	}

	uc := usecase.NewGetWhatsAppUseCase(&fakeEventReader{}, leads)

	out, err := uc.Execute(context.Background())
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if out != nil {
		t.Fatalf("expected nil result on error")
	}
}
