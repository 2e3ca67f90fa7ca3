package fiber

// TrackEventRequest represents an instrumentation event payload
// @Description Event tracking DTO
type TrackEventRequest struct {
	EventName string         `json:"event_name"`
	SessionID string         `json:"session_id"`
	UserID    string         `json:"user_id"`
	Timestamp int64          `json:"timestamp"`
	Props     map[string]any `json:"props"`
}

type TrackEventResponse struct {
	Status  string `json:"status"`
	EventID string `json:"event_id,omitempty"`
}

type BulkTrackEventsRequest struct {
	Events []TrackEventRequest `json:"events"`
}

type BulkTrackEventsResponse struct {
	Created int `json:"created"`
}

// UpsertSessionRequest carries the attributes captured on first page load.
type UpsertSessionRequest struct {
	SessionID   string `json:"session_id"`
	UserID      string `json:"user_id"`
	DeviceType  string `json:"device_type"`
	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
	UTMContent  string `json:"utm_content"`
	UTMTerm     string `json:"utm_term"`
	LandingPage string `json:"landing_page"`
	Referrer    string `json:"referrer"`
	Country     string `json:"country"`
	IsReturning bool   `json:"is_returning"`
}

type UpsertSessionResponse struct {
	SessionID string `json:"session_id"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_event"`
	Message string `json:"message,omitempty" example:"event payload is invalid"`
}
