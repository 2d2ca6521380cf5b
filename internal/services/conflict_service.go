package services

import (
	"fmt"

	"eventscrm/internal/domain"
	"eventscrm/internal/domain/models"
	"eventscrm/internal/repositories"
	"eventscrm/internal/scheduling"
)

// ConflictService classifies scheduling conflicts for a proposed date range.
// Confirmed bookings are hard locks; reserved/logistics bookings only warn.
type ConflictService struct {
	EventRepo repositories.EventRepository

	// FindOverlapsFn overrides the repository lookup in tests.
	FindOverlapsFn func(rg scheduling.DateRange, excludeEventID int64) ([]models.Conflict, error)
}

// Decision is the outcome of a pre-booking conflict check.
type Decision struct {
	Allowed   bool              `json:"allowed"`
	Conflicts []models.Conflict `json:"conflicts"`
	Reason    string            `json:"reason,omitempty"`
}

func (s ConflictService) findOverlaps(rg scheduling.DateRange, excludeEventID int64) ([]models.Conflict, error) {
	if s.FindOverlapsFn != nil {
		return s.FindOverlapsFn(rg, excludeEventID)
	}
	return s.EventRepo.FindOverlaps(rg, excludeEventID)
}

// FindOverlaps returns every existing event intersecting the range.
func (s ConflictService) FindOverlaps(rg scheduling.DateRange, excludeEventID int64) ([]models.Conflict, error) {
	return s.findOverlaps(rg, excludeEventID)
}

// CanCreate decides whether a booking on the range may proceed. A lookup
// failure is returned as-is (typed transient by the repository) and the
// decision stays blocked: an unchecked range is never treated as available.
func (s ConflictService) CanCreate(rg scheduling.DateRange, excludeEventID int64) (Decision, error) {
	conflicts, err := s.findOverlaps(rg, excludeEventID)
	if err != nil {
		return Decision{Allowed: false}, err
	}
	return Decide(conflicts), nil
}

// Decide applies the two-tier severity rule to a conflict set.
func Decide(conflicts []models.Conflict) Decision {
	confirmed := 0
	for _, c := range conflicts {
		if c.Blocking() {
			confirmed++
		}
	}

	switch {
	case confirmed > 0:
		return Decision{
			Allowed:   false,
			Conflicts: conflicts,
			Reason:    fmt.Sprintf("%d confirmed booking(s) already cover this range", confirmed),
		}
	case len(conflicts) > 0:
		return Decision{
			Allowed:   true,
			Conflicts: conflicts,
			Reason:    fmt.Sprintf("%d advisory conflict(s) on this range", len(conflicts)),
		}
	default:
		return Decision{Allowed: true, Conflicts: []models.Conflict{}}
	}
}

// CheckAvailability reports the aggregated status of a range plus the
// conflicts behind it. Read path only, recomputed on every call.
func (s ConflictService) CheckAvailability(rg scheduling.DateRange, excludeEventID int64) (domain.AvailabilityStatus, []models.Conflict, error) {
	conflicts, err := s.findOverlaps(rg, excludeEventID)
	if err != nil {
		return "", nil, err
	}
	events := make([]models.Event, 0, len(conflicts))
	for _, c := range conflicts {
		events = append(events, models.Event{
			StartDate: c.StartDate,
			EndDate:   c.EndDate,
			Status:    c.Status,
		})
	}
	return scheduling.ResolveRange(rg, events), conflicts, nil
}
