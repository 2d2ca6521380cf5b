package scheduling

import (
	"time"

	"eventscrm/internal/domain"
	"eventscrm/internal/domain/models"
)

// Resolve derives the availability of a single date from the events covering
// it. Precedence, highest first:
//
//  1. any CONFIRMED covering event      -> CONFIRMED
//  2. any LOGISTICS or IN_PROGRESS      -> RESERVED
//  3. covering events, all cancelled    -> CANCELLED
//  4. no covering events                -> AVAILABLE
//
// Pure and total: never errors, never caches. Events that do not cover the
// date are ignored, so callers may pass a wider candidate set.
func Resolve(date time.Time, events []models.Event) domain.AvailabilityStatus {
	covering := 0
	reserved := false
	for _, e := range events {
		if !EventRange(e).Contains(date) {
			continue
		}
		covering++
		switch e.Status {
		case domain.EventConfirmed:
			return domain.ConfirmedBooked
		case domain.EventLogistics, domain.EventInProgress:
			reserved = true
		}
	}
	switch {
	case reserved:
		return domain.Reserved
	case covering > 0:
		return domain.CancelledAvailable
	default:
		return domain.Available
	}
}

// ResolveRange folds Resolve over every day of a range, reporting the
// strongest status found. Used by the range form of the availability check.
func ResolveRange(r DateRange, events []models.Event) domain.AvailabilityStatus {
	out := domain.Available
	for _, day := range r.Days() {
		switch Resolve(day, events) {
		case domain.ConfirmedBooked:
			return domain.ConfirmedBooked
		case domain.Reserved:
			out = domain.Reserved
		case domain.CancelledAvailable:
			if out == domain.Available {
				out = domain.CancelledAvailable
			}
		}
	}
	return out
}
