// Package domain holds the sales pipeline write model.
package domain

import "time"

const (
	StatusNew       = "new"
	StatusQualified = "qualified"
	StatusProposal  = "proposal"
	StatusWon       = "won"
	StatusLost      = "lost"
)

// KnownStatus reports whether s is one of the five pipeline statuses.
func KnownStatus(s string) bool {
	switch s {
	case StatusNew, StatusQualified, StatusProposal, StatusWon, StatusLost:
		return true
	}
	return false
}

// Closed reports whether a status ends the pipeline. ClosedAt is set if and
// only if the lead reaches one of these.
func Closed(status string) bool {
	return status == StatusWon || status == StatusLost
}

type Lead struct {
	ID               string
	CreatedAt        time.Time
	ClosedAt         *time.Time
	Status           string
	Source           string
	Medium           string
	Campaign         string
	ServiceInterest  string
	DealValue        *float64
	ReplyTimeMinutes *float64
	SessionID        string
	ClickID          string
	Phone            string
	Email            string
}
