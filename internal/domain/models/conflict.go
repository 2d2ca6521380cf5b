package models

import (
	"time"

	"eventscrm/internal/domain"
)

// Conflict is a read-only projection of an event that overlaps a queried
// range, with the client name denormalized for display.
type Conflict struct {
	EventID    int64              `json:"eventId"`
	QuoteID    int64              `json:"quoteId"`
	StartDate  time.Time          `json:"startDate"`
	EndDate    *time.Time         `json:"endDate,omitempty"`
	Status     domain.EventStatus `json:"status"`
	ClientName string             `json:"clientName"`
}

// Blocking reports whether this conflict alone prevents booking.
func (c Conflict) Blocking() bool {
	return c.Status == domain.EventConfirmed
}
