package fiber

import "site-analytics-service/internal/analytics/core/domain"

// OverviewResponse is the session/device rollup plus headline KPIs.
// @Description Dashboard overview metrics
type OverviewResponse struct {
	Sessions            int                  `json:"sessions"`
	Users               int                  `json:"users"`
	WhatsAppLeads       int                  `json:"whatsapp_leads"`
	PricingWAConversion float64              `json:"pricing_wa_conversion"`
	QualifiedLeadRate   float64              `json:"qualified_lead_rate"`
	CloseRate           float64              `json:"close_rate"`
	Revenue             float64              `json:"revenue"`
	MedianReplyTime     float64              `json:"median_reply_time"`
	NewVisitors         int                  `json:"new_visitors"`
	ReturningVisitors   int                  `json:"returning_visitors"`
	Devices             map[string]DeviceDTO `json:"devices"`
}

type DeviceDTO struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type AcquisitionResponse struct {
	TopSources []SourceDTO `json:"top_sources"`
}

type SourceDTO struct {
	Source         string  `json:"source"`
	Sessions       int     `json:"sessions"`
	Conversions    int     `json:"conversions"`
	ConversionRate float64 `json:"conversion_rate"`
}

type FunnelResponse struct {
	Steps          []FunnelStepDTO   `json:"steps"`
	CTAByPlacement []CTAPlacementDTO `json:"cta_by_placement"`
}

type FunnelStepDTO struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	DropOff    int     `json:"drop_off,omitempty"`
}

type CTAPlacementDTO struct {
	Placement string   `json:"placement"`
	Clicks    int      `json:"clicks"`
	Services  []string `json:"services"`
}

type BlogResponse struct {
	TopPosts           []PostEngagementDTO     `json:"top_posts"`
	TotalViews         int                     `json:"total_views"`
	TotalAssistedLeads int                     `json:"total_assisted_leads"`
	AvgReadTimeSec     int                     `json:"avg_read_time_sec"`
	CTAClicksByPost    map[string]CTAClicksDTO `json:"cta_clicks_by_post"`
}

type PostEngagementDTO struct {
	Slug           string  `json:"slug"`
	Title          string  `json:"title"`
	Views          int     `json:"views"`
	AvgReadTimeSec int     `json:"avg_read_time_sec"`
	Scroll75Rate   float64 `json:"scroll_75_rate"`
	AssistedLeads  int     `json:"assisted_leads"`
}

type CTAClicksDTO struct {
	Inline int `json:"inline"`
	Banner int `json:"banner"`
	Footer int `json:"footer"`
}

type PipelineResponse struct {
	Stages             map[string]int            `json:"stages"`
	WinRate            float64                   `json:"win_rate"`
	AvgDealSize        float64                   `json:"avg_deal_size"`
	AvgTimeToCloseDays float64                   `json:"avg_time_to_close_days"`
	RevenueBySource    map[string]float64        `json:"revenue_by_source"`
	DealsByService     map[string]ServiceDealDTO `json:"deals_by_service"`
	TimeToCloseCohorts map[string]int            `json:"time_to_close_cohorts"`
}

type ServiceDealDTO struct {
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

type WhatsAppResponse struct {
	TotalLeads         int                            `json:"total_leads"`
	LeadsBySource      map[string]int                 `json:"leads_by_source"`
	LeadsByService     map[string]int                 `json:"leads_by_service"`
	ReplyTime          ReplyTimeDTO                   `json:"reply_time"`
	ConversionBySource map[string]SourceConversionDTO `json:"conversion_by_source"`
}

type ReplyTimeDTO struct {
	Median         float64 `json:"median"`
	Under15Min     int     `json:"under_15_min"`
	Under1Hour     int     `json:"under_1_hour"`
	Over1Hour      int     `json:"over_1_hour"`
	Between15And60 int     `json:"between_15_and_60"`
}

type SourceConversionDTO struct {
	Leads     int `json:"leads"`
	Qualified int `json:"qualified"`
	Closed    int `json:"closed"`
}

// DashboardResponse carries every panel; a null panel means its fetch failed.
type DashboardResponse struct {
	Overview    *OverviewResponse    `json:"overview"`
	Acquisition *AcquisitionResponse `json:"acquisition"`
	Funnel      *FunnelResponse      `json:"funnel"`
	Blog        *BlogResponse        `json:"blog"`
	Pipeline    *PipelineResponse    `json:"pipeline"`
	WhatsApp    *WhatsAppResponse    `json:"whatsapp"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_range"`
	Message string `json:"message,omitempty" example:"invalid range token"`
}

func toOverviewResponse(m *domain.OverviewMetrics) *OverviewResponse {
	if m == nil {
		return nil
	}
	return &OverviewResponse{
		Sessions:            m.Sessions,
		Users:               m.Users,
		WhatsAppLeads:       m.WhatsAppLeads,
		PricingWAConversion: m.PricingWAConversion,
		QualifiedLeadRate:   m.QualifiedLeadRate,
		CloseRate:           m.CloseRate,
		Revenue:             m.Revenue,
		MedianReplyTime:     m.MedianReplyTime,
		NewVisitors:         m.NewVisitors,
		ReturningVisitors:   m.ReturningVisitors,
		Devices: map[string]DeviceDTO{
			"mobile":  {Count: m.Devices.Mobile.Count, Percentage: m.Devices.Mobile.Percentage},
			"desktop": {Count: m.Devices.Desktop.Count, Percentage: m.Devices.Desktop.Percentage},
			"tablet":  {Count: m.Devices.Tablet.Count, Percentage: m.Devices.Tablet.Percentage},
		},
	}
}

func toAcquisitionResponse(m *domain.AcquisitionMetrics) *AcquisitionResponse {
	if m == nil {
		return nil
	}
	sources := make([]SourceDTO, 0, len(m.TopSources))
	for _, s := range m.TopSources {
		sources = append(sources, SourceDTO{
			Source:         s.Source,
			Sessions:       s.Sessions,
			Conversions:    s.Conversions,
			ConversionRate: s.ConversionRate,
		})
	}
	return &AcquisitionResponse{TopSources: sources}
}

func toFunnelResponse(m *domain.FunnelMetrics) *FunnelResponse {
	if m == nil {
		return nil
	}
	steps := make([]FunnelStepDTO, 0, len(m.Steps))
	for _, s := range m.Steps {
		steps = append(steps, FunnelStepDTO{
			Name:       s.Name,
			Count:      s.Count,
			Percentage: s.Percentage,
			DropOff:    s.DropOff,
		})
	}
	placements := make([]CTAPlacementDTO, 0, len(m.CTAByPlacement))
	for _, p := range m.CTAByPlacement {
		placements = append(placements, CTAPlacementDTO{
			Placement: p.Placement,
			Clicks:    p.Clicks,
			Services:  p.Services,
		})
	}
	return &FunnelResponse{Steps: steps, CTAByPlacement: placements}
}

func toBlogResponse(m *domain.BlogMetrics) *BlogResponse {
	if m == nil {
		return nil
	}
	posts := make([]PostEngagementDTO, 0, len(m.TopPosts))
	for _, p := range m.TopPosts {
		posts = append(posts, PostEngagementDTO{
			Slug:           p.Slug,
			Title:          p.Title,
			Views:          p.Views,
			AvgReadTimeSec: p.AvgReadTimeSec,
			Scroll75Rate:   p.Scroll75Rate,
			AssistedLeads:  p.AssistedLeads,
		})
	}
	ctas := make(map[string]CTAClicksDTO, len(m.CTAClicksByPost))
	for slug, c := range m.CTAClicksByPost {
		ctas[slug] = CTAClicksDTO{Inline: c.Inline, Banner: c.Banner, Footer: c.Footer}
	}
	return &BlogResponse{
		TopPosts:           posts,
		TotalViews:         m.TotalViews,
		TotalAssistedLeads: m.TotalAssistedLeads,
		AvgReadTimeSec:     m.AvgReadTimeSec,
		CTAClicksByPost:    ctas,
	}
}

func toPipelineResponse(m *domain.PipelineMetrics) *PipelineResponse {
	if m == nil {
		return nil
	}
	deals := make(map[string]ServiceDealDTO, len(m.DealsByService))
	for service, d := range m.DealsByService {
		deals[service] = ServiceDealDTO{Count: d.Count, Value: d.Value}
	}
	return &PipelineResponse{
		Stages: map[string]int{
			"new":       m.Stages.New,
			"qualified": m.Stages.Qualified,
			"proposal":  m.Stages.Proposal,
			"won":       m.Stages.Won,
			"lost":      m.Stages.Lost,
		},
		WinRate:            m.WinRate,
		AvgDealSize:        m.AvgDealSize,
		AvgTimeToCloseDays: m.AvgTimeToCloseDays,
		RevenueBySource:    m.RevenueBySource,
		DealsByService:     deals,
		TimeToCloseCohorts: m.TimeToCloseCohorts,
	}
}

func toWhatsAppResponse(m *domain.WhatsAppMetrics) *WhatsAppResponse {
	if m == nil {
		return nil
	}
	conversions := make(map[string]SourceConversionDTO, len(m.ConversionBySource))
	for source, c := range m.ConversionBySource {
		conversions[source] = SourceConversionDTO{
			Leads:     c.Leads,
			Qualified: c.Qualified,
			Closed:    c.Closed,
		}
	}
	return &WhatsAppResponse{
		TotalLeads:     m.TotalLeads,
		LeadsBySource:  m.LeadsBySource,
		LeadsByService: m.LeadsByService,
		ReplyTime: ReplyTimeDTO{
			Median:         m.ReplyTime.Median,
			Under15Min:     m.ReplyTime.Under15Min,
			Under1Hour:     m.ReplyTime.Under1Hour,
			Over1Hour:      m.ReplyTime.Over1Hour,
			Between15And60: m.ReplyTime.Between15And60,
		},
		ConversionBySource: conversions,
	}
}
