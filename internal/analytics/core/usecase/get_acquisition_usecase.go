package usecase

import (
	"context"
	"sort"
	"time"

	"site-analytics-service/internal/analytics/core/domain"
	"site-analytics-service/internal/analytics/core/ports"
	"site-analytics-service/internal/analytics/core/stats"
	"site-analytics-service/internal/analytics/core/timerange"
)

const topSourceLimit = 5

type GetAcquisitionInput struct {
	RangeToken string
}

type GetAcquisitionUseCase struct {
	sessions ports.SessionReaderPort
	events   ports.EventReaderPort
}

func NewGetAcquisitionUseCase(sessions ports.SessionReaderPort, events ports.EventReaderPort) *GetAcquisitionUseCase {
	return &GetAcquisitionUseCase{sessions: sessions, events: events}
}

func (uc *GetAcquisitionUseCase) Execute(ctx context.Context, in GetAcquisitionInput) (*domain.AcquisitionMetrics, error) {
	window, err := timerange.Resolve(in.RangeToken, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	sessions, err := uc.sessions.ListSessions(ctx, window)
	if err != nil {
		return nil, err
	}

	redirects, err := uc.events.ListEvents(ctx, ports.EventFilter{
		Range: window,
		Names: []string{domain.EventWhatsAppClick},
	})
	if err != nil {
		return nil, err
	}

	// Session count per source, first-seen order preserved for the tie-break.
	counts := map[string]int{}
	var order []string
	for _, s := range sessions {
		source := s.Source()
		if _, seen := counts[source]; !seen {
			order = append(order, source)
		}
		counts[source]++
	}

	conversions := map[string]int{}
	for _, e := range redirects {
		conversions[e.Props.GetString("utm_source", "")]++
	}

	ranked := make([]domain.SourceStats, 0, len(order))
	for _, source := range order {
		ranked = append(ranked, domain.SourceStats{
			Source:         source,
			Sessions:       counts[source],
			Conversions:    conversions[source],
			ConversionRate: stats.Percentage(conversions[source], counts[source]),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Sessions > ranked[j].Sessions
	})
	if len(ranked) > topSourceLimit {
		ranked = ranked[:topSourceLimit]
	}

	return &domain.AcquisitionMetrics{TopSources: ranked}, nil
}
