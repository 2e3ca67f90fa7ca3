package fiber

// CreateLeadRequest opens a pipeline record.
// @Description Lead creation DTO
type CreateLeadRequest struct {
	Source          string `json:"source"`
	Medium          string `json:"medium"`
	Campaign        string `json:"campaign"`
	ServiceInterest string `json:"service_interest"`
	SessionID       string `json:"session_id"`
	ClickID         string `json:"click_id"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
}

type CreateLeadResponse struct {
	LeadID string `json:"lead_id"`
	Status string `json:"status"`
}

type AdvanceStatusRequest struct {
	Status string `json:"status"`
}

type RecordReplyTimeRequest struct {
	Minutes float64 `json:"minutes"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_lead"`
	Message string `json:"message,omitempty" example:"lead payload is invalid"`
}
