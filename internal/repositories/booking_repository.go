package repositories

import (
	"database/sql"
	"errors"

	intconfig "eventscrm/internal/config"
	intdb "eventscrm/internal/db"
	"eventscrm/internal/domain"
	"eventscrm/internal/domain/models"
	"eventscrm/internal/scheduling"
)

// BookingRepository is the only write path into quotes/quote_services/events.
type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// BookingAggregate is the linked Quote -> QuoteService(s) -> Event unit a
// booking creates. Either all of it persists or none of it does.
type BookingAggregate struct {
	Quote    models.Quote
	Services []models.QuoteService
	Event    models.Event
}

// CreateAggregate persists the aggregate in a single transaction. Before
// inserting it re-checks, under row locks, that no CONFIRMED event covers the
// proposed range; the pre-flight conflict check alone is advisory, two
// callers can both pass it for the same dates. A confirmed overlap found
// here is a ConflictError; lock waits and deadlocks come back as
// TransientError so the caller can retry.
func (r BookingRepository) CreateAggregate(agg BookingAggregate) (BookingAggregate, error) {
	db := r.db()
	if db == nil {
		return agg, domain.TransientError{Op: "create booking", Err: errors.New("db not connected")}
	}

	tx, err := db.Begin()
	if err != nil {
		return agg, classifySQLError("create booking", err)
	}
	defer tx.Rollback()

	rg := scheduling.EventRange(agg.Event)
	var confirmed int
	err = tx.QueryRow(`
		SELECT COUNT(*)
		FROM events
		WHERE status = ?
		  AND start_date <= ? AND COALESCE(end_date, start_date) >= ?
		FOR UPDATE
	`, string(domain.EventConfirmed), rg.End, rg.Start).Scan(&confirmed)
	if err != nil {
		return agg, classifySQLError("verify availability", err)
	}
	if confirmed > 0 {
		return agg, domain.ConflictError{
			Resource: "booking",
			Msg:      "date range already confirmed",
		}
	}

	quoteRes, err := tx.Exec(`
		INSERT INTO quotes (reference, client_id, vendor_id, status, total_amount, event_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())
	`,
		agg.Quote.Reference,
		agg.Quote.ClientID,
		agg.Quote.VendorID,
		string(agg.Quote.Status),
		agg.Quote.TotalAmount,
		agg.Quote.EventDate,
	)
	if err != nil {
		return agg, classifySQLError("insert quote", err)
	}
	agg.Quote.ID, _ = quoteRes.LastInsertId()

	for i, svc := range agg.Services {
		if _, err := tx.Exec(`
			INSERT INTO quote_services (quote_id, service_id, quantity, final_price)
			VALUES (?, ?, ?, ?)
		`, agg.Quote.ID, svc.ServiceID, svc.Quantity, svc.FinalPrice); err != nil {
			return agg, classifySQLError("insert quote service", err)
		}
		agg.Services[i].QuoteID = agg.Quote.ID
	}

	agg.Event.QuoteID = agg.Quote.ID
	var endDate any
	if agg.Event.EndDate != nil {
		endDate = *agg.Event.EndDate
	}
	eventRes, err := tx.Exec(`
		INSERT INTO events
			(quote_id, title, start_date, end_date, start_time, end_time, status,
			 location, guest_count, event_type, emergency_contact, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`,
		agg.Event.QuoteID,
		agg.Event.Title,
		agg.Event.StartDate,
		endDate,
		intdb.NullIfEmpty(agg.Event.StartTime),
		intdb.NullIfEmpty(agg.Event.EndTime),
		string(agg.Event.Status),
		intdb.NullIfEmpty(agg.Event.Location),
		agg.Event.GuestCount,
		intdb.NullIfEmpty(agg.Event.EventType),
		intdb.NullIfEmpty(agg.Event.EmergencyContact),
	)
	if err != nil {
		return agg, classifySQLError("insert event", err)
	}
	agg.Event.ID, _ = eventRes.LastInsertId()

	if err := tx.Commit(); err != nil {
		return agg, classifySQLError("commit booking", err)
	}
	return agg, nil
}

// BookingDetail is the read model for one booking.
type BookingDetail struct {
	Quote    models.Quote
	Client   models.Client
	Event    models.Event
	Services []models.QuoteService
}

// GetDetail loads a booking by quote id, joining client and event.
func (r BookingRepository) GetDetail(quoteID int64) (BookingDetail, error) {
	if quoteID <= 0 {
		return BookingDetail{}, domain.ValidationError{Field: "quoteId", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return BookingDetail{}, domain.TransientError{Op: "get booking", Err: errors.New("db not connected")}
	}

	var (
		d           BookingDetail
		quoteStatus string
		eventStatus string
		end         sql.NullTime
	)
	err := db.QueryRow(`
		SELECT q.id, COALESCE(q.reference, ''), q.client_id, q.vendor_id, q.status,
		       q.total_amount, q.event_date,
		       COALESCE(c.id, 0), COALESCE(c.name, ''), COALESCE(c.email, ''), COALESCE(c.phone, ''),
		       e.id, COALESCE(e.title, ''), e.start_date, e.end_date,
		       COALESCE(e.start_time, ''), COALESCE(e.end_time, ''), e.status,
		       COALESCE(e.location, ''), COALESCE(e.guest_count, 0), COALESCE(e.event_type, '')
		FROM quotes q
		JOIN events e ON e.quote_id = q.id
		LEFT JOIN clients c ON c.id = q.client_id
		WHERE q.id = ?
	`, quoteID).Scan(
		&d.Quote.ID, &d.Quote.Reference, &d.Quote.ClientID, &d.Quote.VendorID, &quoteStatus,
		&d.Quote.TotalAmount, &d.Quote.EventDate,
		&d.Client.ID, &d.Client.Name, &d.Client.Email, &d.Client.Phone,
		&d.Event.ID, &d.Event.Title, &d.Event.StartDate, &end,
		&d.Event.StartTime, &d.Event.EndTime, &eventStatus,
		&d.Event.Location, &d.Event.GuestCount, &d.Event.EventType,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BookingDetail{}, domain.NotFoundError{Resource: "booking"}
		}
		return BookingDetail{}, classifySQLError("get booking", err)
	}
	d.Quote.Status = domain.QuoteStatus(quoteStatus)
	d.Event.Status = normalizeStoredStatus(eventStatus)
	d.Event.QuoteID = d.Quote.ID
	if end.Valid {
		e := end.Time
		d.Event.EndDate = &e
	}

	rows, err := db.Query(`
		SELECT quote_id, service_id, quantity, final_price
		FROM quote_services
		WHERE quote_id = ?
		ORDER BY service_id
	`, quoteID)
	if err != nil {
		return BookingDetail{}, classifySQLError("get booking services", err)
	}
	defer rows.Close()
	for rows.Next() {
		var svc models.QuoteService
		if err := rows.Scan(&svc.QuoteID, &svc.ServiceID, &svc.Quantity, &svc.FinalPrice); err != nil {
			return BookingDetail{}, classifySQLError("get booking services", err)
		}
		d.Services = append(d.Services, svc)
	}
	if err := rows.Err(); err != nil {
		return BookingDetail{}, classifySQLError("get booking services", err)
	}
	return d, nil
}
