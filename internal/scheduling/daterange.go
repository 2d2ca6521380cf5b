package scheduling

import (
	"time"

	"eventscrm/internal/domain"
	"eventscrm/internal/domain/models"
	"eventscrm/internal/utils"
)

// DateRange is an inclusive day-granularity range. A range built with a nil
// end covers Start only.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange normalizes start/end to calendar days. A nil end means a
// single-day range.
func NewDateRange(start time.Time, end *time.Time) DateRange {
	s := utils.DayOf(start)
	e := s
	if end != nil {
		e = utils.DayOf(*end)
	}
	return DateRange{Start: s, End: e}
}

// ParseDateRange builds a range from YYYY-MM-DD strings; end may be empty.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := utils.ParseDate(start)
	if err != nil {
		return DateRange{}, domain.ValidationError{Field: "startDate", Msg: "expected YYYY-MM-DD", Err: err}
	}
	if end == "" {
		return NewDateRange(s, nil), nil
	}
	e, err := utils.ParseDate(end)
	if err != nil {
		return DateRange{}, domain.ValidationError{Field: "endDate", Msg: "expected YYYY-MM-DD", Err: err}
	}
	if e.Before(s) {
		return DateRange{}, domain.ValidationError{Field: "endDate", Msg: "must not be before startDate"}
	}
	return NewDateRange(s, &e), nil
}

// Overlaps reports whether two inclusive ranges intersect:
// s1 <= e2 && s2 <= e1.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Contains reports whether the range covers the given day.
func (r DateRange) Contains(day time.Time) bool {
	d := utils.DayOf(day)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns every day of the range in order.
func (r DateRange) Days() []time.Time {
	var out []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// EventRange builds the inclusive range an event occupies.
func EventRange(e models.Event) DateRange {
	return NewDateRange(e.StartDate, e.EndDate)
}

// ConflictRange builds the inclusive range a conflict projection occupies.
func ConflictRange(c models.Conflict) DateRange {
	return NewDateRange(c.StartDate, c.EndDate)
}
