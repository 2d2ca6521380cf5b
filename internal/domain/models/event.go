package models

import (
	"time"

	"eventscrm/internal/domain"
)

// Event is the scheduled occurrence backing a quote. EndDate nil means the
// event spans StartDate only.
type Event struct {
	ID               int64
	QuoteID          int64
	Title            string
	StartDate        time.Time
	EndDate          *time.Time
	StartTime        string
	EndTime          string
	Status           domain.EventStatus
	Location         string
	GuestCount       int
	EventType        string
	EmergencyContact string
	CreatedAt        time.Time
}

// Last returns the inclusive end of the event's range.
func (e Event) Last() time.Time {
	if e.EndDate != nil {
		return *e.EndDate
	}
	return e.StartDate
}

// EventSummary is the per-cell calendar projection of an event, with the
// client name denormalized through the owning quote.
type EventSummary struct {
	EventID    int64              `json:"eventId"`
	ClientName string             `json:"clientName"`
	Status     domain.EventStatus `json:"status"`
}
