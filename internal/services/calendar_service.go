package services

import (
	"time"

	"eventscrm/internal/domain/models"
	"eventscrm/internal/repositories"
	"eventscrm/internal/scheduling"
)

// CalendarService builds month/week/day views. Read-only and stateless:
// navigation just changes the anchor and re-runs the projection.
type CalendarService struct {
	EventRepo repositories.EventRepository

	// ListEvents overrides the repository lookup in tests.
	ListEvents func(rg scheduling.DateRange) ([]repositories.EventRecord, error)
}

func (s CalendarService) listEvents(rg scheduling.DateRange) ([]repositories.EventRecord, error) {
	if s.ListEvents != nil {
		return s.ListEvents(rg)
	}
	return s.EventRepo.ListBetween(rg)
}

// Project emits one DateCell per day of the view's window. Month windows
// include leading/trailing days of adjacent months, flagged with
// InMonth=false so the UI can dim them; their availability still resolves.
func (s CalendarService) Project(view scheduling.CalendarView, anchor time.Time) ([]models.DateCell, error) {
	window := scheduling.Window(view, anchor)
	records, err := s.listEvents(window)
	if err != nil {
		return nil, err
	}

	events := make([]models.Event, len(records))
	for i, rec := range records {
		events[i] = rec.Event
	}

	cells := make([]models.DateCell, 0, len(window.Days()))
	for _, day := range window.Days() {
		cell := models.DateCell{
			Date:    day,
			InMonth: view != scheduling.ViewMonth || day.Month() == anchor.Month(),
			Status:  scheduling.Resolve(day, events),
			Events:  []models.EventSummary{},
		}
		for _, rec := range records {
			if !scheduling.EventRange(rec.Event).Contains(day) {
				continue
			}
			cell.Events = append(cell.Events, models.EventSummary{
				EventID:    rec.Event.ID,
				ClientName: rec.ClientName,
				Status:     rec.Event.Status,
			})
		}
		cell.EventCount = len(cell.Events)
		cells = append(cells, cell)
	}
	return cells, nil
}
