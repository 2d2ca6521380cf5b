package domain

import "strings"

// EventStatus is the canonical event lifecycle vocabulary. All inbound strings
// (legacy frontend values included) must pass through ParseEventStatus; no
// other layer compares raw status strings.
type EventStatus string

const (
	EventConfirmed  EventStatus = "CONFIRMED"
	EventLogistics  EventStatus = "LOGISTICS"
	EventInProgress EventStatus = "IN_PROGRESS"
	EventCancelled  EventStatus = "CANCELLED"
	EventNoShow     EventStatus = "NO_SHOW"
)

// QuoteStatus tracks the commercial side of a booking.
type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "DRAFT"
	QuoteSent     QuoteStatus = "SENT"
	QuoteApproved QuoteStatus = "APPROVED"
	QuoteRejected QuoteStatus = "REJECTED"
)

// AvailabilityStatus is derived per date from the events covering it.
// Never persisted; always recomputed.
type AvailabilityStatus string

const (
	Available          AvailabilityStatus = "AVAILABLE"
	Reserved           AvailabilityStatus = "RESERVED"
	ConfirmedBooked    AvailabilityStatus = "CONFIRMED"
	CancelledAvailable AvailabilityStatus = "CANCELLED"
)

// eventStatusAliases maps legacy frontend spellings onto the canonical enum.
var eventStatusAliases = map[string]EventStatus{
	"confirmed":   EventConfirmed,
	"logistics":   EventLogistics,
	"pending":     EventLogistics,
	"reserved":    EventLogistics,
	"in_progress": EventInProgress,
	"in-progress": EventInProgress,
	"cancelled":   EventCancelled,
	"canceled":    EventCancelled,
	"no_show":     EventNoShow,
	"no-show":     EventNoShow,
	"noshow":      EventNoShow,
}

// ParseEventStatus normalizes an inbound status string. Returns false for
// anything outside the vocabulary.
func ParseEventStatus(s string) (EventStatus, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return "", false
	}
	if st, ok := eventStatusAliases[key]; ok {
		return st, true
	}
	return "", false
}

// IsActive reports whether the status still occupies its dates.
func (s EventStatus) IsActive() bool {
	switch s {
	case EventConfirmed, EventLogistics, EventInProgress:
		return true
	default:
		return false
	}
}

// IsCancelled reports whether the event no longer blocks anything.
func (s EventStatus) IsCancelled() bool {
	return s == EventCancelled || s == EventNoShow
}
