package models

import (
	"time"

	"eventscrm/internal/domain"
)

// DateCell is one renderable day of a calendar projection.
type DateCell struct {
	Date       time.Time                 `json:"date"`
	InMonth    bool                      `json:"inMonth"`
	Status     domain.AvailabilityStatus `json:"status"`
	Events     []EventSummary            `json:"events"`
	EventCount int                       `json:"eventCount"`
}
