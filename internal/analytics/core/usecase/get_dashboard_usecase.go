package usecase

import (
	"context"
	"sync"

	"site-analytics-service/internal/analytics/core/domain"

	"github.com/rs/zerolog"
)

type GetDashboardInput struct {
	RangeToken string // overview + acquisition window
	Timeframe  string // lead pipeline window: "30d" | "90d" | "all"
}

// GetDashboardUseCase fans the panel fetches out concurrently. Panels do not
// depend on each other, so one failed fetch leaves its panel nil and the rest
// intact.
type GetDashboardUseCase struct {
	overview    *GetOverviewUseCase
	acquisition *GetAcquisitionUseCase
	funnel      *GetFunnelUseCase
	blog        *GetBlogEngagementUseCase
	pipeline    *GetLeadPipelineUseCase
	whatsapp    *GetWhatsAppUseCase
	log         zerolog.Logger
}

func NewGetDashboardUseCase(
	overview *GetOverviewUseCase,
	acquisition *GetAcquisitionUseCase,
	funnel *GetFunnelUseCase,
	blog *GetBlogEngagementUseCase,
	pipeline *GetLeadPipelineUseCase,
	whatsapp *GetWhatsAppUseCase,
	log zerolog.Logger,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		overview:    overview,
		acquisition: acquisition,
		funnel:      funnel,
		blog:        blog,
		pipeline:    pipeline,
		whatsapp:    whatsapp,
		log:         log,
	}
}

func (uc *GetDashboardUseCase) Execute(ctx context.Context, in GetDashboardInput) *domain.DashboardMetrics {
	out := &domain.DashboardMetrics{}

	var wg sync.WaitGroup
	run := func(panel string, fetch func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(); err != nil {
				uc.log.Warn().Err(err).Str("panel", panel).Msg("dashboard panel degraded")
			}
		}()
	}

	run("overview", func() error {
		m, err := uc.overview.Execute(ctx, GetOverviewInput{RangeToken: in.RangeToken})
		out.Overview = m
		return err
	})
	run("acquisition", func() error {
		m, err := uc.acquisition.Execute(ctx, GetAcquisitionInput{RangeToken: in.RangeToken})
		out.Acquisition = m
		return err
	})
	run("funnel", func() error {
		m, err := uc.funnel.Execute(ctx)
		out.Funnel = m
		return err
	})
	run("blog", func() error {
		m, err := uc.blog.Execute(ctx)
		out.Blog = m
		return err
	})
	run("pipeline", func() error {
		m, err := uc.pipeline.Execute(ctx, GetLeadPipelineInput{Timeframe: in.Timeframe})
		out.Pipeline = m
		return err
	})
	run("whatsapp", func() error {
		m, err := uc.whatsapp.Execute(ctx)
		out.WhatsApp = m
		return err
	})

	wg.Wait()
	return out
}
