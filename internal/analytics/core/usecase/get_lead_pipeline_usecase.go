package usecase

import (
	"context"
	"errors"
	"time"

	"site-analytics-service/internal/analytics/core/domain"
	"site-analytics-service/internal/analytics/core/ports"
	"site-analytics-service/internal/analytics/core/stats"
	"site-analytics-service/internal/analytics/core/timerange"

	"github.com/rs/zerolog"
)

var ErrInvalidTimeframe = errors.New("invalid pipeline timeframe")

type GetLeadPipelineInput struct {
	Timeframe string // "30d" | "90d" | "all"
}

type GetLeadPipelineUseCase struct {
	leads ports.LeadReaderPort
	log   zerolog.Logger
}

func NewGetLeadPipelineUseCase(leads ports.LeadReaderPort, log zerolog.Logger) *GetLeadPipelineUseCase {
	return &GetLeadPipelineUseCase{leads: leads, log: log}
}

func (uc *GetLeadPipelineUseCase) Execute(ctx context.Context, in GetLeadPipelineInput) (*domain.PipelineMetrics, error) {
	switch in.Timeframe {
	case timerange.Last30Days, timerange.Last90Days, timerange.All:
	default:
		return nil, ErrInvalidTimeframe
	}

	window, err := timerange.Resolve(in.Timeframe, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	leads, err := uc.leads.ListLeads(ctx, window)
	if err != nil {
		return nil, err
	}

	out := &domain.PipelineMetrics{
		RevenueBySource:    map[string]float64{},
		DealsByService:     map[string]domain.ServiceDeals{},
		TimeToCloseCohorts: map[string]int{},
	}

	unknownStatus := 0
	var dealValues []float64
	var daysToClose []float64
	for _, lead := range leads {
		switch lead.Status {
		case domain.StatusNew:
			out.Stages.New++
		case domain.StatusQualified:
			out.Stages.Qualified++
		case domain.StatusProposal:
			out.Stages.Proposal++
		case domain.StatusWon:
			out.Stages.Won++
		case domain.StatusLost:
			out.Stages.Lost++
		default:
			unknownStatus++
		}

		won := lead.Status == domain.StatusWon
		if won && lead.DealValue != nil {
			dealValues = append(dealValues, *lead.DealValue)
			out.RevenueBySource[leadSource(lead)] += *lead.DealValue
		}

		service := leadService(lead)
		deals := out.DealsByService[service]
		deals.Count++
		if won && lead.DealValue != nil {
			deals.Value += *lead.DealValue
		}
		out.DealsByService[service] = deals

		if lead.ClosedAt != nil {
			elapsed := lead.ClosedAt.Sub(lead.CreatedAt)
			daysToClose = append(daysToClose, elapsed.Hours()/24)
			out.TimeToCloseCohorts[stats.Cohort(stats.WholeDays(lead.CreatedAt, *lead.ClosedAt))]++
		}
	}

	if unknownStatus > 0 {
		uc.log.Warn().
			Int("count", unknownStatus).
			Msg("leads with unrecognized status excluded from stage counts")
	}

	out.WinRate = stats.Percentage(out.Stages.Won, out.Stages.Won+out.Stages.Lost)
	out.AvgDealSize = stats.Mean(dealValues)
	out.AvgTimeToCloseDays = stats.Mean(daysToClose)

	return out, nil
}

func leadSource(l domain.LeadRecord) string {
	if l.Source == nil || *l.Source == "" {
		return "direct"
	}
	return *l.Source
}

func leadService(l domain.LeadRecord) string {
	if l.ServiceInterest == nil || *l.ServiceInterest == "" {
		return "general"
	}
	return *l.ServiceInterest
}
