package repositories

import (
	"testing"

	"eventscrm/internal/domain"
	"eventscrm/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func sampleAggregate() BookingAggregate {
	return BookingAggregate{
		Quote: models.Quote{
			Reference:   "Q-ABC123",
			ClientID:    4,
			VendorID:    2,
			Status:      domain.QuoteApproved,
			TotalAmount: 25000,
			EventDate:   day("2025-06-01"),
		},
		Services: []models.QuoteService{
			{ServiceID: 11, Quantity: 2, FinalPrice: 10000},
			{ServiceID: 12, Quantity: 1, FinalPrice: 5000},
		},
		Event: models.Event{
			Title:     "Garden wedding",
			StartDate: day("2025-06-01"),
			StartTime: "16:00",
			Status:    domain.EventConfirmed,
		},
	}
}

func TestCreateAggregateCommitsAllRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("CONFIRMED", day("2025-06-01"), day("2025-06-01")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO quotes").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("INSERT INTO quote_services").
		WithArgs(int64(10), int64(11), 2, int64(10000)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO quote_services").
		WithArgs(int64(10), int64(12), 1, int64(5000)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO events").
		WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectCommit()

	repo := BookingRepository{DB: db}
	got, err := repo.CreateAggregate(sampleAggregate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Quote.ID != 10 {
		t.Fatalf("quote id = %d, want 10", got.Quote.ID)
	}
	if got.Event.ID != 77 || got.Event.QuoteID != 10 {
		t.Fatalf("event ids wrong: id=%d quote_id=%d", got.Event.ID, got.Event.QuoteID)
	}
	for _, svc := range got.Services {
		if svc.QuoteID != 10 {
			t.Fatalf("service quote_id = %d, want 10", svc.QuoteID)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateAggregateRejectsConfirmedOverlapInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	repo := BookingRepository{DB: db}
	_, err = repo.CreateAggregate(sampleAggregate())
	if !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	// No insert was ever attempted: the expectations above cover every call.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateAggregateRollsBackWhenEventInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	agg := sampleAggregate()
	agg.Services = agg.Services[:1]

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO quotes").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("INSERT INTO quote_services").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO events").
		WillReturnError(errDuplicateEntry())
	mock.ExpectRollback()

	repo := BookingRepository{DB: db}
	_, err = repo.CreateAggregate(agg)
	if !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError from duplicate key, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
