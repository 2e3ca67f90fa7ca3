package usecase

import (
	"context"
	"time"

	"site-analytics-service/internal/analytics/core/domain"
	"site-analytics-service/internal/analytics/core/ports"
	"site-analytics-service/internal/analytics/core/stats"
	"site-analytics-service/internal/analytics/core/timerange"
)

const whatsappWindowDays = 30

type GetWhatsAppUseCase struct {
	events ports.EventReaderPort
	leads  ports.LeadReaderPort
}

func NewGetWhatsAppUseCase(events ports.EventReaderPort, leads ports.LeadReaderPort) *GetWhatsAppUseCase {
	return &GetWhatsAppUseCase{events: events, leads: leads}
}

func (uc *GetWhatsAppUseCase) Execute(ctx context.Context) (*domain.WhatsAppMetrics, error) {
	window := timerange.LastDays(whatsappWindowDays, time.Now().UTC())

	redirects, err := uc.events.ListEvents(ctx, ports.EventFilter{
		Range: window,
		Names: []string{domain.EventWhatsAppClick},
	})
	if err != nil {
		return nil, err
	}

	leads, err := uc.leads.ListLeads(ctx, window)
	if err != nil {
		return nil, err
	}

	out := &domain.WhatsAppMetrics{
		TotalLeads:         len(redirects),
		LeadsBySource:      map[string]int{},
		LeadsByService:     map[string]int{},
		ConversionBySource: map[string]domain.SourceConversion{},
	}

	for _, e := range redirects {
		source := e.Props.GetString("utm_source", "")
		if source == "" {
			source = e.Props.GetString("source", "direct")
			if source == "" {
				source = "direct"
			}
		}
		out.LeadsBySource[source]++

		service := e.Props.GetString("service", "general")
		if service == "" {
			service = "general"
		}
		out.LeadsByService[service]++
	}

	var replyTimes []float64
	for _, l := range leads {
		if l.ReplyTimeMinutes != nil {
			replyTimes = append(replyTimes, *l.ReplyTimeMinutes)
		}
	}
	out.ReplyTime = computeReplyTimeStats(replyTimes)

	for source, count := range out.LeadsBySource {
		conv := domain.SourceConversion{Leads: count}
		for _, l := range leads {
			if l.Source == nil || *l.Source != source {
				continue
			}
			if l.Status != domain.StatusNew {
				conv.Qualified++
			}
			if l.Status == domain.StatusWon {
				conv.Closed++
			}
		}
		out.ConversionBySource[source] = conv
	}

	return out, nil
}

func computeReplyTimeStats(replyTimes []float64) domain.ReplyTimeStats {
	s := domain.ReplyTimeStats{
		Median: stats.Median(replyTimes),
	}
	for _, t := range replyTimes {
		switch {
		case t <= 15:
			s.Under15Min++
			s.Under1Hour++
		case t <= 60:
			s.Under1Hour++
		default:
			s.Over1Hour++
		}
	}
	// The 15-60 display band is derived, not re-filtered.
	s.Between15And60 = s.Under1Hour - s.Under15Min
	return s
}
