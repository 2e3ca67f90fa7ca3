package fiber

import (
	"context"
	"errors"
	"net/http"

	"site-analytics-service/internal/analytics/core/domain"
	"site-analytics-service/internal/analytics/core/timerange"
	"site-analytics-service/internal/analytics/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetOverviewUseCase interface {
	Execute(ctx context.Context, in usecase.GetOverviewInput) (*domain.OverviewMetrics, error)
}

type GetAcquisitionUseCase interface {
	Execute(ctx context.Context, in usecase.GetAcquisitionInput) (*domain.AcquisitionMetrics, error)
}

type GetFunnelUseCase interface {
	Execute(ctx context.Context) (*domain.FunnelMetrics, error)
}

type GetBlogEngagementUseCase interface {
	Execute(ctx context.Context) (*domain.BlogMetrics, error)
}

type GetLeadPipelineUseCase interface {
	Execute(ctx context.Context, in usecase.GetLeadPipelineInput) (*domain.PipelineMetrics, error)
}

type GetWhatsAppUseCase interface {
	Execute(ctx context.Context) (*domain.WhatsAppMetrics, error)
}

type GetDashboardUseCase interface {
	Execute(ctx context.Context, in usecase.GetDashboardInput) *domain.DashboardMetrics
}

type AnalyticsHandler struct {
	overviewUC    GetOverviewUseCase
	acquisitionUC GetAcquisitionUseCase
	funnelUC      GetFunnelUseCase
	blogUC        GetBlogEngagementUseCase
	pipelineUC    GetLeadPipelineUseCase
	whatsappUC    GetWhatsAppUseCase
	dashboardUC   GetDashboardUseCase
}

func NewAnalyticsHandler(
	overviewUC GetOverviewUseCase,
	acquisitionUC GetAcquisitionUseCase,
	funnelUC GetFunnelUseCase,
	blogUC GetBlogEngagementUseCase,
	pipelineUC GetLeadPipelineUseCase,
	whatsappUC GetWhatsAppUseCase,
	dashboardUC GetDashboardUseCase,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		overviewUC:    overviewUC,
		acquisitionUC: acquisitionUC,
		funnelUC:      funnelUC,
		blogUC:        blogUC,
		pipelineUC:    pipelineUC,
		whatsappUC:    whatsappUC,
		dashboardUC:   dashboardUC,
	}
}

// GetOverview godoc
// @Summary Session and KPI overview
// @Description Session, device and headline KPI rollup for the selected range
// @Tags Analytics
// @Produce json
// @Param range query string false "Range token: today | 7d | 30d | 90d | all" default(7d)
// @Success 200 {object} OverviewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/overview [get]
func (h *AnalyticsHandler) GetOverview(c *fiber.Ctx) error {
	out, err := h.overviewUC.Execute(c.UserContext(), usecase.GetOverviewInput{
		RangeToken: c.Query("range", timerange.Last7Days),
	})
	if err != nil {
		return analyticsError(c, err)
	}
	return c.JSON(toOverviewResponse(out))
}

// GetAcquisition godoc
// @Summary Top acquisition sources
// @Description Top sources by session count with WhatsApp conversion rates
// @Tags Analytics
// @Produce json
// @Param range query string false "Range token: today | 7d | 30d | 90d | all" default(7d)
// @Success 200 {object} AcquisitionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/acquisition [get]
func (h *AnalyticsHandler) GetAcquisition(c *fiber.Ctx) error {
	out, err := h.acquisitionUC.Execute(c.UserContext(), usecase.GetAcquisitionInput{
		RangeToken: c.Query("range", timerange.Last7Days),
	})
	if err != nil {
		return analyticsError(c, err)
	}
	return c.JSON(toAcquisitionResponse(out))
}

// GetFunnel godoc
// @Summary Pricing conversion funnel
// @Description Landing -> pricing -> WhatsApp funnel over the trailing 7 days
// @Tags Analytics
// @Produce json
// @Success 200 {object} FunnelResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/funnel [get]
func (h *AnalyticsHandler) GetFunnel(c *fiber.Ctx) error {
	out, err := h.funnelUC.Execute(c.UserContext())
	if err != nil {
		return analyticsError(c, err)
	}
	return c.JSON(toFunnelResponse(out))
}

// GetBlog godoc
// @Summary Blog engagement
// @Description Per-post views, read time, scroll depth and assisted leads over the trailing 30 days
// @Tags Analytics
// @Produce json
// @Success 200 {object} BlogResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/blog [get]
func (h *AnalyticsHandler) GetBlog(c *fiber.Ctx) error {
	out, err := h.blogUC.Execute(c.UserContext())
	if err != nil {
		return analyticsError(c, err)
	}
	return c.JSON(toBlogResponse(out))
}

// GetPipeline godoc
// @Summary Lead pipeline
// @Description Stage counts, win rate, deal sizing and time-to-close cohorts
// @Tags Analytics
// @Produce json
// @Param timeframe query string false "Timeframe: 30d | 90d | all" default(30d)
// @Success 200 {object} PipelineResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/pipeline [get]
func (h *AnalyticsHandler) GetPipeline(c *fiber.Ctx) error {
	out, err := h.pipelineUC.Execute(c.UserContext(), usecase.GetLeadPipelineInput{
		Timeframe: c.Query("timeframe", timerange.Last30Days),
	})
	if err != nil {
		return analyticsError(c, err)
	}
	return c.JSON(toPipelineResponse(out))
}

// GetWhatsApp godoc
// @Summary WhatsApp contact analytics
// @Description Redirect volume by source/service and reply-time latency over the trailing 30 days
// @Tags Analytics
// @Produce json
// @Success 200 {object} WhatsAppResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/whatsapp [get]
func (h *AnalyticsHandler) GetWhatsApp(c *fiber.Ctx) error {
	out, err := h.whatsappUC.Execute(c.UserContext())
	if err != nil {
		return analyticsError(c, err)
	}
	return c.JSON(toWhatsAppResponse(out))
}

// GetDashboard godoc
// @Summary Combined dashboard
// @Description All panels fetched concurrently; a failed panel comes back null
// @Tags Analytics
// @Produce json
// @Param range query string false "Range token: today | 7d | 30d | 90d | all" default(7d)
// @Param timeframe query string false "Pipeline timeframe: 30d | 90d | all" default(30d)
// @Success 200 {object} DashboardResponse
// @Router /analytics/dashboard [get]
func (h *AnalyticsHandler) GetDashboard(c *fiber.Ctx) error {
	out := h.dashboardUC.Execute(c.UserContext(), usecase.GetDashboardInput{
		RangeToken: c.Query("range", timerange.Last7Days),
		Timeframe:  c.Query("timeframe", timerange.Last30Days),
	})
	return c.JSON(DashboardResponse{
		Overview:    toOverviewResponse(out.Overview),
		Acquisition: toAcquisitionResponse(out.Acquisition),
		Funnel:      toFunnelResponse(out.Funnel),
		Blog:        toBlogResponse(out.Blog),
		Pipeline:    toPipelineResponse(out.Pipeline),
		WhatsApp:    toWhatsAppResponse(out.WhatsApp),
	})
}

func analyticsError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, timerange.ErrInvalidRangeToken):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_range",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrInvalidTimeframe):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_timeframe",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
