package services

import (
	"testing"
	"time"

	"eventscrm/internal/domain"
	"eventscrm/internal/domain/models"
	"eventscrm/internal/repositories"
	"eventscrm/internal/scheduling"
)

func stubCalendar(records ...repositories.EventRecord) CalendarService {
	return CalendarService{
		ListEvents: func(rg scheduling.DateRange) ([]repositories.EventRecord, error) {
			return records, nil
		},
	}
}

func record(id int64, status domain.EventStatus, start, end, client string) repositories.EventRecord {
	e := models.Event{ID: id, Status: status, StartDate: day(start)}
	if end != "" {
		d := day(end)
		e.EndDate = &d
	}
	return repositories.EventRecord{Event: e, ClientName: client}
}

func TestProjectMonthGridShape(t *testing.T) {
	svc := stubCalendar()
	cells, err := svc.Project(scheduling.ViewMonth, day("2025-06-15"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells)%7 != 0 {
		t.Fatalf("month grid must be whole weeks, got %d cells", len(cells))
	}
	if cells[0].Date.Weekday() != time.Monday {
		t.Fatalf("grid must start on Monday, got %s", cells[0].Date.Weekday())
	}
	// June 2025 starts on a Sunday: the first row is mostly May.
	if cells[0].InMonth {
		t.Fatalf("leading adjacent-month day must be dimmed")
	}
	inMonth := 0
	for _, c := range cells {
		if c.InMonth {
			inMonth++
		}
		if c.Status != domain.Available {
			t.Fatalf("empty calendar should be all AVAILABLE, got %s on %v", c.Status, c.Date)
		}
	}
	if inMonth != 30 {
		t.Fatalf("June has 30 in-month days, got %d", inMonth)
	}
}

func TestProjectWeekIsSevenCells(t *testing.T) {
	svc := stubCalendar()
	cells, err := svc.Project(scheduling.ViewWeek, day("2025-06-05"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 7 {
		t.Fatalf("week view must have 7 cells, got %d", len(cells))
	}
	if cells[0].Date != day("2025-06-02") {
		t.Fatalf("week must start from Monday, got %v", cells[0].Date)
	}
	for _, c := range cells {
		if !c.InMonth {
			t.Fatalf("week cells are never dimmed")
		}
	}
}

func TestProjectDaySingleCell(t *testing.T) {
	svc := stubCalendar(record(1, domain.EventConfirmed, "2025-06-05", "", "Acme"))
	cells, err := svc.Project(scheduling.ViewDay, day("2025-06-05"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 1 {
		t.Fatalf("day view must have 1 cell, got %d", len(cells))
	}
	if cells[0].Status != domain.ConfirmedBooked {
		t.Fatalf("status = %s, want CONFIRMED", cells[0].Status)
	}
	if cells[0].EventCount != 1 || cells[0].Events[0].ClientName != "Acme" {
		t.Fatalf("event summary missing: %+v", cells[0])
	}
}

func TestProjectResolvesPerDateStatus(t *testing.T) {
	svc := stubCalendar(
		record(1, domain.EventConfirmed, "2025-06-10", "2025-06-11", "Acme"),
		record(2, domain.EventLogistics, "2025-06-12", "", "Globex"),
		record(3, domain.EventCancelled, "2025-06-13", "", "Initech"),
	)
	cells, err := svc.Project(scheduling.ViewWeek, day("2025-06-10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byDate := map[string]models.DateCell{}
	for _, c := range cells {
		byDate[c.Date.Format("2006-01-02")] = c
	}

	if got := byDate["2025-06-10"].Status; got != domain.ConfirmedBooked {
		t.Fatalf("06-10 = %s, want CONFIRMED", got)
	}
	if got := byDate["2025-06-11"].Status; got != domain.ConfirmedBooked {
		t.Fatalf("06-11 = %s, want CONFIRMED (multi-day event)", got)
	}
	if got := byDate["2025-06-12"].Status; got != domain.Reserved {
		t.Fatalf("06-12 = %s, want RESERVED", got)
	}
	if got := byDate["2025-06-13"].Status; got != domain.CancelledAvailable {
		t.Fatalf("06-13 = %s, want CANCELLED", got)
	}
	if got := byDate["2025-06-14"].Status; got != domain.Available {
		t.Fatalf("06-14 = %s, want AVAILABLE", got)
	}
	if n := byDate["2025-06-12"].EventCount; n != 1 {
		t.Fatalf("06-12 event count = %d, want 1", n)
	}
}

func TestProjectStatelessNavigation(t *testing.T) {
	svc := stubCalendar(record(1, domain.EventConfirmed, "2025-06-10", "", "Acme"))
	first, err := svc.Project(scheduling.ViewMonth, day("2025-06-15"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Navigate away and back; projection must be identical.
	if _, err := svc.Project(scheduling.ViewMonth, day("2025-07-15")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Project(scheduling.ViewMonth, day("2025-06-15"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("projection changed between identical calls")
	}
	for i := range first {
		if first[i].Status != second[i].Status || first[i].EventCount != second[i].EventCount {
			t.Fatalf("cell %d differs between identical calls", i)
		}
	}
}
