package domain

// OverviewMetrics is the session/device rollup plus the headline KPIs.
type OverviewMetrics struct {
	Sessions            int
	Users               int
	WhatsAppLeads       int
	PricingWAConversion float64
	QualifiedLeadRate   float64
	CloseRate           float64
	Revenue             float64
	MedianReplyTime     float64
	NewVisitors         int
	ReturningVisitors   int
	Devices             DeviceBreakdown
}

type DeviceBreakdown struct {
	Mobile  DeviceSlice
	Desktop DeviceSlice
	Tablet  DeviceSlice
}

type DeviceSlice struct {
	Count      int
	Percentage float64 // share of the three known categories
}

// AcquisitionMetrics ranks the top sources by session volume.
type AcquisitionMetrics struct {
	TopSources []SourceStats
}

type SourceStats struct {
	Source         string
	Sessions       int
	Conversions    int // whatsapp_redirect events attributed via utm_source prop
	ConversionRate float64
}

// FunnelMetrics is the landing -> pricing -> WhatsApp conversion sequence.
type FunnelMetrics struct {
	Steps          []FunnelStep
	CTAByPlacement []CTAPlacementStats
}

type FunnelStep struct {
	Name       string
	Count      int
	Percentage float64 // of the previous step; the first step is the 100% baseline
	DropOff    int     // vs the previous step, clamped at 0
}

type CTAPlacementStats struct {
	Placement string
	Clicks    int
	Services  []string // distinct service values seen for this placement
}

// BlogMetrics is the per-post engagement rollup.
type BlogMetrics struct {
	TopPosts           []PostEngagement
	TotalViews         int
	TotalAssistedLeads int
	AvgReadTimeSec     int
	CTAClicksByPost    map[string]CTAClicks
}

type PostEngagement struct {
	Slug           string
	Title          string
	Views          int
	AvgReadTimeSec int
	Scroll75Rate   float64
	AssistedLeads  int
}

// CTAClicks is typed to the three known placements; anything else is dropped.
type CTAClicks struct {
	Inline int
	Banner int
	Footer int
}

func (c CTAClicks) Total() int {
	return c.Inline + c.Banner + c.Footer
}

// PipelineMetrics is the lead pipeline and revenue rollup.
type PipelineMetrics struct {
	Stages             StageCounts
	WinRate            float64
	AvgDealSize        float64
	AvgTimeToCloseDays float64
	RevenueBySource    map[string]float64
	DealsByService     map[string]ServiceDeals
	TimeToCloseCohorts map[string]int
}

type StageCounts struct {
	New       int
	Qualified int
	Proposal  int
	Won       int
	Lost      int
}

func (s StageCounts) Total() int {
	return s.New + s.Qualified + s.Proposal + s.Won + s.Lost
}

type ServiceDeals struct {
	Count int
	Value float64 // won deals only
}

// WhatsAppMetrics covers redirect volume and reply-time latency.
type WhatsAppMetrics struct {
	TotalLeads         int
	LeadsBySource      map[string]int
	LeadsByService     map[string]int
	ReplyTime          ReplyTimeStats
	ConversionBySource map[string]SourceConversion
}

type ReplyTimeStats struct {
	Median         float64
	Under15Min     int
	Under1Hour     int // inclusive of the under-15 bucket
	Over1Hour      int
	Between15And60 int // Under1Hour - Under15Min
}

type SourceConversion struct {
	Leads     int
	Qualified int
	Closed    int
}

// DashboardMetrics bundles every panel. A nil panel means its fetch failed and
// the panel degraded independently.
type DashboardMetrics struct {
	Overview    *OverviewMetrics
	Acquisition *AcquisitionMetrics
	Funnel      *FunnelMetrics
	Blog        *BlogMetrics
	Pipeline    *PipelineMetrics
	WhatsApp    *WhatsAppMetrics
}
