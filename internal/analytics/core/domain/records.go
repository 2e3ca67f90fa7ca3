// Package domain holds the read models and metric shapes for dashboard analytics.
package domain

import "time"

// SessionRecord is a visit snapshot read from analytics_sessions.
type SessionRecord struct {
	ID          string
	UserID      *string
	StartedAt   time.Time
	EndedAt     *time.Time
	DeviceType  string // "mobile" | "desktop" | "tablet", may be empty
	UTMSource   *string
	UTMMedium   *string
	UTMCampaign *string
	UTMContent  *string
	UTMTerm     *string
	LandingPage *string
	Referrer    *string
	Country     *string
	IsReturning bool
	PageViews   int
}

// Source returns the acquisition source, or "direct" when no utm_source was captured.
func (s SessionRecord) Source() string {
	if s.UTMSource == nil || *s.UTMSource == "" {
		return "direct"
	}
	return *s.UTMSource
}

// EventRecord is an instrumentation event read from analytics_events.
type EventRecord struct {
	ID         string
	EventName  string
	SessionID  string
	UserID     *string
	OccurredAt time.Time
	Props      Props
}

// LeadRecord is a sales pipeline record read from leads.
type LeadRecord struct {
	ID               string
	CreatedAt        time.Time
	ClosedAt         *time.Time
	Status           string // "new" | "qualified" | "proposal" | "won" | "lost"
	Source           *string
	Medium           *string
	Campaign         *string
	ServiceInterest  *string
	DealValue        *float64
	ReplyTimeMinutes *float64
	SessionID        *string
}

// PostRecord is a blog post reference; analytics only reads slug and title.
type PostRecord struct {
	ID          string
	Slug        string
	Title       string
	Published   bool
	PublishedAt *time.Time
	Tags        []string
}

const (
	StatusNew       = "new"
	StatusQualified = "qualified"
	StatusProposal  = "proposal"
	StatusWon       = "won"
	StatusLost      = "lost"
)

const (
	EventPageView      = "page_view"
	EventPricingView   = "pricing_view"
	EventPricingCTA    = "pricing_cta_click"
	EventWhatsAppClick = "whatsapp_redirect"
	EventBlogRead      = "blog_read"
	EventBlogCTAClick  = "blog_cta_click"
	EventScrollDepth   = "scroll_depth"
)
