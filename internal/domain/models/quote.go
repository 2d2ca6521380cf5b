package models

import (
	"time"

	"eventscrm/internal/domain"
)

// Client is created externally or alongside a booking; immutable afterwards.
type Client struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

// Quote is the priced proposal owning the booked event.
type Quote struct {
	ID          int64
	Reference   string
	ClientID    int64
	VendorID    int64
	Status      domain.QuoteStatus
	TotalAmount int64
	EventDate   time.Time
	CreatedAt   time.Time
}

// QuoteService is one line item of a quote. FinalPrice is in cents.
type QuoteService struct {
	QuoteID    int64 `json:"quoteId"`
	ServiceID  int64 `json:"serviceId"`
	Quantity   int   `json:"quantity"`
	FinalPrice int64 `json:"finalPrice"`
}

// Subtotal is quantity times unit price.
func (s QuoteService) Subtotal() int64 {
	return int64(s.Quantity) * s.FinalPrice
}
