package scheduling

import (
	"time"

	"eventscrm/internal/utils"
)

// CalendarView selects the projection window.
type CalendarView string

const (
	ViewMonth CalendarView = "month"
	ViewWeek  CalendarView = "week"
	ViewDay   CalendarView = "day"
)

// MondayOf returns the Monday of the week containing the given day.
func MondayOf(day time.Time) time.Time {
	d := utils.DayOf(day)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return d.AddDate(0, 0, -offset)
}

// MonthWindow returns the full-week window covering the anchor's month:
// from the Monday on or before the 1st through the Sunday on or after the
// last day. Always a whole number of weeks.
func MonthWindow(anchor time.Time) DateRange {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	last := first.AddDate(0, 1, -1)
	start := MondayOf(first)
	end := MondayOf(last).AddDate(0, 0, 6)
	return DateRange{Start: start, End: end}
}

// WeekWindow returns the 7-day window starting from the anchor's Monday.
func WeekWindow(anchor time.Time) DateRange {
	start := MondayOf(anchor)
	return DateRange{Start: start, End: start.AddDate(0, 0, 6)}
}

// DayWindow returns the single-day window for the anchor.
func DayWindow(anchor time.Time) DateRange {
	d := utils.DayOf(anchor)
	return DateRange{Start: d, End: d}
}

// Window maps a view to its date window.
func Window(view CalendarView, anchor time.Time) DateRange {
	switch view {
	case ViewWeek:
		return WeekWindow(anchor)
	case ViewDay:
		return DayWindow(anchor)
	default:
		return MonthWindow(anchor)
	}
}
