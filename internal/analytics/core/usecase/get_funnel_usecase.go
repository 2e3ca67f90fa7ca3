package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"site-analytics-service/internal/analytics/core/domain"
	"site-analytics-service/internal/analytics/core/ports"
	"site-analytics-service/internal/analytics/core/stats"
	"site-analytics-service/internal/analytics/core/timerange"
)

// The funnel always looks at the trailing week, independent of the dashboard's
// selected range.
const funnelWindowDays = 7

type GetFunnelUseCase struct {
	events ports.EventReaderPort
}

func NewGetFunnelUseCase(events ports.EventReaderPort) *GetFunnelUseCase {
	return &GetFunnelUseCase{events: events}
}

func (uc *GetFunnelUseCase) Execute(ctx context.Context) (*domain.FunnelMetrics, error) {
	window := timerange.LastDays(funnelWindowDays, time.Now().UTC())

	pageViews, err := uc.events.ListEvents(ctx, ports.EventFilter{
		Range: window,
		Names: []string{domain.EventPageView},
	})
	if err != nil {
		return nil, err
	}

	pricingViews, err := uc.events.ListEvents(ctx, ports.EventFilter{
		Range: window,
		Names: []string{domain.EventPricingView},
	})
	if err != nil {
		return nil, err
	}

	ctaClicks, err := uc.events.ListEvents(ctx, ports.EventFilter{
		Range: window,
		Names: []string{domain.EventPricingCTA},
	})
	if err != nil {
		return nil, err
	}

	landing := 0
	for _, pv := range pageViews {
		path := pv.Props.GetString("path", "")
		if path == "/" || strings.HasPrefix(path, "/services") {
			landing++
		}
	}

	steps := []domain.FunnelStep{
		{
			Name:       "Landing Page Views",
			Count:      landing,
			Percentage: 100,
		},
		{
			Name:       "Pricing Page Views",
			Count:      len(pricingViews),
			Percentage: stats.Percentage(len(pricingViews), landing),
			DropOff:    clampNonNegative(landing - len(pricingViews)),
		},
		{
			Name:       "WhatsApp Clicks",
			Count:      len(ctaClicks),
			Percentage: stats.Percentage(len(ctaClicks), len(pricingViews)),
			DropOff:    clampNonNegative(len(pricingViews) - len(ctaClicks)),
		},
	}

	return &domain.FunnelMetrics{
		Steps:          steps,
		CTAByPlacement: groupCTAByPlacement(ctaClicks),
	}, nil
}

func groupCTAByPlacement(clicks []domain.EventRecord) []domain.CTAPlacementStats {
	type bucket struct {
		clicks   int
		services map[string]struct{}
	}

	buckets := map[string]*bucket{}
	var order []string
	for _, click := range clicks {
		placement := click.Props.GetString("placement", "unknown")
		if placement == "" {
			placement = "unknown"
		}
		b, ok := buckets[placement]
		if !ok {
			b = &bucket{services: map[string]struct{}{}}
			buckets[placement] = b
			order = append(order, placement)
		}
		b.clicks++
		if service := click.Props.GetString("service", ""); service != "" {
			b.services[service] = struct{}{}
		}
	}

	out := make([]domain.CTAPlacementStats, 0, len(order))
	for _, placement := range order {
		b := buckets[placement]
		services := make([]string, 0, len(b.services))
		for s := range b.services {
			services = append(services, s)
		}
		sort.Strings(services)
		out = append(out, domain.CTAPlacementStats{
			Placement: placement,
			Clicks:    b.clicks,
			Services:  services,
		})
	}
	return out
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
