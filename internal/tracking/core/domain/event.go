// Package domain holds the write models for site instrumentation.
package domain

import "time"

// Event is an append-only instrumentation record.
type Event struct {
	ID         string
	EventName  string
	SessionID  string
	UserID     string
	OccurredAt time.Time
	Props      map[string]any
}

// Session is a visit record, created on the first page load and updated by
// page-view increments.
type Session struct {
	ID          string
	UserID      string
	StartedAt   time.Time
	DeviceType  string
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
	UTMContent  string
	UTMTerm     string
	LandingPage string
	Referrer    string
	Country     string
	IsReturning bool
}
