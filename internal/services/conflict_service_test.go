package services

import (
	"strings"
	"testing"
	"time"

	"eventscrm/internal/domain"
	"eventscrm/internal/domain/models"
	"eventscrm/internal/scheduling"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func rng(start, end string) scheduling.DateRange {
	if end == "" {
		return scheduling.NewDateRange(day(start), nil)
	}
	e := day(end)
	return scheduling.NewDateRange(day(start), &e)
}

func conflict(status domain.EventStatus, start, end string) models.Conflict {
	c := models.Conflict{EventID: 1, QuoteID: 1, StartDate: day(start), Status: status, ClientName: "Acme"}
	if end != "" {
		e := day(end)
		c.EndDate = &e
	}
	return c
}

func stubConflicts(cs ...models.Conflict) ConflictService {
	return ConflictService{
		FindOverlapsFn: func(rg scheduling.DateRange, exclude int64) ([]models.Conflict, error) {
			return cs, nil
		},
	}
}

func TestCanCreateNoConflicts(t *testing.T) {
	svc := stubConflicts()
	d, err := svc.CanCreate(rng("2025-06-01", ""), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Allowed {
		t.Fatalf("empty range must be allowed")
	}
	if len(d.Conflicts) != 0 || d.Reason != "" {
		t.Fatalf("expected clean decision, got %+v", d)
	}
}

func TestCanCreateConfirmedOverlapBlocks(t *testing.T) {
	svc := stubConflicts(conflict(domain.EventConfirmed, "2025-07-10", "2025-07-12"))
	d, err := svc.CanCreate(rng("2025-07-11", ""), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Allowed {
		t.Fatalf("confirmed overlap must block creation")
	}
	if !strings.Contains(d.Reason, "1 confirmed") {
		t.Fatalf("reason should state the confirmed count, got %q", d.Reason)
	}
	if len(d.Conflicts) != 1 || d.Conflicts[0].Status != domain.EventConfirmed {
		t.Fatalf("blocking conflict not returned: %+v", d.Conflicts)
	}
}

func TestCanCreateAdvisoryOverlapWarnsOnly(t *testing.T) {
	svc := stubConflicts(conflict(domain.EventLogistics, "2025-08-01", ""))
	d, err := svc.CanCreate(rng("2025-08-01", ""), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Allowed {
		t.Fatalf("advisory conflicts must not block")
	}
	if !strings.Contains(d.Reason, "1 advisory") {
		t.Fatalf("reason should mention the advisory count, got %q", d.Reason)
	}
	if len(d.Conflicts) != 1 {
		t.Fatalf("advisory conflict must still be returned")
	}
}

func TestCanCreateBlocksIffAnyConfirmed(t *testing.T) {
	svc := stubConflicts(
		conflict(domain.EventLogistics, "2025-08-01", ""),
		conflict(domain.EventCancelled, "2025-08-01", ""),
		conflict(domain.EventConfirmed, "2025-08-01", ""),
	)
	d, err := svc.CanCreate(rng("2025-08-01", ""), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Allowed {
		t.Fatalf("mixed set with a confirmed conflict must block")
	}
}

func TestCanCreateLookupFailureStaysBlocked(t *testing.T) {
	svc := ConflictService{
		FindOverlapsFn: func(rg scheduling.DateRange, exclude int64) ([]models.Conflict, error) {
			return nil, domain.TransientError{Op: "find overlaps"}
		},
	}
	d, err := svc.CanCreate(rng("2025-06-01", ""), 0)
	if !domain.IsTransient(err) {
		t.Fatalf("expected TransientError, got %v", err)
	}
	if d.Allowed {
		t.Fatalf("a failed check must never report available")
	}
}

func TestCheckAvailabilityAggregatesStatus(t *testing.T) {
	svc := stubConflicts(
		conflict(domain.EventCancelled, "2025-07-10", ""),
		conflict(domain.EventLogistics, "2025-07-11", ""),
	)
	status, conflicts, err := svc.CheckAvailability(rng("2025-07-10", "2025-07-12"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != domain.Reserved {
		t.Fatalf("status = %s, want RESERVED", status)
	}
	if len(conflicts) != 2 {
		t.Fatalf("expected both conflicts returned, got %d", len(conflicts))
	}
}

func TestCheckAvailabilityEmptyRangeIsAvailable(t *testing.T) {
	svc := stubConflicts()
	status, conflicts, err := svc.CheckAvailability(rng("2025-06-01", ""), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != domain.Available {
		t.Fatalf("status = %s, want AVAILABLE", status)
	}
	if len(conflicts) != 0 {
		t.Fatalf("expected no conflicts")
	}
}
