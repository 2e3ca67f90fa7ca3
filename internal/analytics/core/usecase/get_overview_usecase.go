package usecase

import (
	"context"
	"time"

	"site-analytics-service/internal/analytics/core/domain"
	"site-analytics-service/internal/analytics/core/ports"
	"site-analytics-service/internal/analytics/core/stats"
	"site-analytics-service/internal/analytics/core/timerange"

	"github.com/rs/zerolog"
)

type GetOverviewInput struct {
	RangeToken string // "today" | "7d" | "30d" | "90d" | "all"
}

type GetOverviewUseCase struct {
	sessions ports.SessionReaderPort
	events   ports.EventReaderPort
	leads    ports.LeadReaderPort
	log      zerolog.Logger
}

func NewGetOverviewUseCase(
	sessions ports.SessionReaderPort,
	events ports.EventReaderPort,
	leads ports.LeadReaderPort,
	log zerolog.Logger,
) *GetOverviewUseCase {
	return &GetOverviewUseCase{sessions: sessions, events: events, leads: leads, log: log}
}

func (uc *GetOverviewUseCase) Execute(ctx context.Context, in GetOverviewInput) (*domain.OverviewMetrics, error) {
	window, err := timerange.Resolve(in.RangeToken, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	sessions, err := uc.sessions.ListSessions(ctx, window)
	if err != nil {
		return nil, err
	}

	waEvents, err := uc.events.ListEvents(ctx, ports.EventFilter{
		Range: window,
		Names: []string{domain.EventWhatsAppClick},
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

	leads, err := uc.leads.ListLeads(ctx, window)
	if err != nil {
		return nil, err
	}

	out := &domain.OverviewMetrics{
		Sessions:      len(sessions),
		WhatsAppLeads: len(waEvents),
	}

	// Distinct users; sessions without a user id stay out of the distinct count.
	users := map[string]struct{}{}
	returning := 0
	unknownDevices := 0
	for _, s := range sessions {
		if s.UserID != nil && *s.UserID != "" {
			users[*s.UserID] = struct{}{}
		}
		if s.IsReturning {
			returning++
		}
		switch s.DeviceType {
		case "mobile":
			out.Devices.Mobile.Count++
		case "desktop":
			out.Devices.Desktop.Count++
		case "tablet":
			out.Devices.Tablet.Count++
		default:
			unknownDevices++
		}
	}
	out.Users = len(users)
	out.ReturningVisitors = returning
	out.NewVisitors = len(sessions) - returning

	knownDevices := out.Devices.Mobile.Count + out.Devices.Desktop.Count + out.Devices.Tablet.Count
	out.Devices.Mobile.Percentage = stats.Percentage(out.Devices.Mobile.Count, knownDevices)
	out.Devices.Desktop.Percentage = stats.Percentage(out.Devices.Desktop.Count, knownDevices)
	out.Devices.Tablet.Percentage = stats.Percentage(out.Devices.Tablet.Count, knownDevices)

	if unknownDevices > 0 {
		uc.log.Warn().
			Int("count", unknownDevices).
			Msg("sessions with unrecognized device_type excluded from device breakdown")
	}

	qualified := 0
	won := 0
	var replyTimes []float64
	for _, l := range leads {
		if l.Status != domain.StatusNew {
			qualified++
		}
		if l.Status == domain.StatusWon {
			won++
			if l.DealValue != nil {
				out.Revenue += *l.DealValue
			}
		}
		if l.ReplyTimeMinutes != nil {
			replyTimes = append(replyTimes, *l.ReplyTimeMinutes)
		}
	}

	out.PricingWAConversion = stats.Percentage(len(waEvents), len(pricingViews))
	out.QualifiedLeadRate = stats.Percentage(qualified, len(waEvents))
	out.CloseRate = stats.Percentage(won, qualified)
	out.MedianReplyTime = stats.Median(replyTimes)

	return out, nil
}
