package repositories

import (
	"database/sql"
	"errors"

	intconfig "eventscrm/internal/config"
	"eventscrm/internal/domain"
	"eventscrm/internal/domain/models"
	"eventscrm/internal/scheduling"
)

type EventRepository struct {
	DB *sql.DB
}

func (r EventRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// EventRecord pairs an event with the client name denormalized through its
// owning quote. The join can surface NULLs for orphan references; they are
// normalized here, never downstream.
type EventRecord struct {
	Event      models.Event
	ClientName string
}

const overlapSelect = `
	SELECT e.id, e.quote_id, e.start_date, e.end_date, e.status, COALESCE(c.name, '')
	FROM events e
	JOIN quotes q ON q.id = e.quote_id
	LEFT JOIN clients c ON c.id = q.client_id
	WHERE e.start_date <= ? AND COALESCE(e.end_date, e.start_date) >= ?`

// FindOverlaps returns every event whose inclusive range intersects the
// given one, excluding excludeEventID when > 0 (used while editing an event).
func (r EventRepository) FindOverlaps(rg scheduling.DateRange, excludeEventID int64) ([]models.Conflict, error) {
	db := r.db()
	if db == nil {
		return nil, domain.TransientError{Op: "find overlaps", Err: errors.New("db not connected")}
	}

	query := overlapSelect
	args := []any{rg.End, rg.Start}
	if excludeEventID > 0 {
		query += ` AND e.id <> ?`
		args = append(args, excludeEventID)
	}
	query += ` ORDER BY e.start_date, e.id`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, classifySQLError("find overlaps", err)
	}
	defer rows.Close()

	out := []models.Conflict{}
	for rows.Next() {
		var (
			c      models.Conflict
			end    sql.NullTime
			status string
		)
		if err := rows.Scan(&c.EventID, &c.QuoteID, &c.StartDate, &end, &status, &c.ClientName); err != nil {
			return nil, classifySQLError("find overlaps", err)
		}
		if end.Valid {
			e := end.Time
			c.EndDate = &e
		}
		c.Status = normalizeStoredStatus(status)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classifySQLError("find overlaps", err)
	}
	return out, nil
}

// ListBetween returns all events intersecting the range, with client names,
// ordered by start date. Read-only; used by the calendar projection.
func (r EventRepository) ListBetween(rg scheduling.DateRange) ([]EventRecord, error) {
	db := r.db()
	if db == nil {
		return nil, domain.TransientError{Op: "list events", Err: errors.New("db not connected")}
	}

	rows, err := db.Query(`
		SELECT e.id, e.quote_id, COALESCE(e.title, ''), e.start_date, e.end_date,
		       COALESCE(e.start_time, ''), COALESCE(e.end_time, ''), e.status,
		       COALESCE(e.location, ''), COALESCE(e.guest_count, 0),
		       COALESCE(e.event_type, ''), COALESCE(c.name, '')
		FROM events e
		JOIN quotes q ON q.id = e.quote_id
		LEFT JOIN clients c ON c.id = q.client_id
		WHERE e.start_date <= ? AND COALESCE(e.end_date, e.start_date) >= ?
		ORDER BY e.start_date, e.id
	`, rg.End, rg.Start)
	if err != nil {
		return nil, classifySQLError("list events", err)
	}
	defer rows.Close()

	out := []EventRecord{}
	for rows.Next() {
		var (
			rec    EventRecord
			end    sql.NullTime
			status string
		)
		if err := rows.Scan(
			&rec.Event.ID,
			&rec.Event.QuoteID,
			&rec.Event.Title,
			&rec.Event.StartDate,
			&end,
			&rec.Event.StartTime,
			&rec.Event.EndTime,
			&status,
			&rec.Event.Location,
			&rec.Event.GuestCount,
			&rec.Event.EventType,
			&rec.ClientName,
		); err != nil {
			return nil, classifySQLError("list events", err)
		}
		if end.Valid {
			e := end.Time
			rec.Event.EndDate = &e
		}
		rec.Event.Status = normalizeStoredStatus(status)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, classifySQLError("list events", err)
	}
	return out, nil
}

// UpdateStatus applies an admin status transition. Rows are never deleted;
// cancellations stay in place for history and audit.
func (r EventRepository) UpdateStatus(eventID int64, status domain.EventStatus) error {
	if eventID <= 0 {
		return domain.ValidationError{Field: "eventId", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return domain.TransientError{Op: "update event status", Err: errors.New("db not connected")}
	}

	res, err := db.Exec(`UPDATE events SET status = ? WHERE id = ?`, string(status), eventID)
	if err != nil {
		return classifySQLError("update event status", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is 0 both for a missing row and for a no-op update;
		// distinguish with a lookup.
		var exists int
		if err := db.QueryRow(`SELECT COUNT(*) FROM events WHERE id = ?`, eventID).Scan(&exists); err != nil {
			return classifySQLError("update event status", err)
		}
		if exists == 0 {
			return domain.NotFoundError{Resource: "event"}
		}
	}
	return nil
}

// normalizeStoredStatus guards against legacy rows written before the
// vocabulary was unified.
func normalizeStoredStatus(s string) domain.EventStatus {
	if st, ok := domain.ParseEventStatus(s); ok {
		return st
	}
	return domain.EventStatus(s)
}
