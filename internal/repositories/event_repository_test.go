package repositories

import (
	"fmt"
	"testing"
	"time"

	"eventscrm/internal/domain"
	"eventscrm/internal/scheduling"

	"github.com/DATA-DOG/go-sqlmock"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func overlapRows(n int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "quote_id", "start_date", "end_date", "status", "name"})
	for i := 0; i < n; i++ {
		rows.AddRow(int64(i+1), int64(i+100), day("2025-07-10"), day("2025-07-12"), "CONFIRMED", fmt.Sprintf("Client %d", i+1))
	}
	return rows
}

func TestFindOverlapsMapsRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT e.id, e.quote_id").
		WithArgs(day("2025-07-11"), day("2025-07-11")).
		WillReturnRows(overlapRows(1))

	repo := EventRepository{DB: db}
	got, err := repo.FindOverlaps(scheduling.NewDateRange(day("2025-07-11"), nil), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(got))
	}
	c := got[0]
	if c.EventID != 1 || c.QuoteID != 100 || c.ClientName != "Client 1" {
		t.Fatalf("unexpected conflict mapping: %+v", c)
	}
	if c.Status != domain.EventConfirmed {
		t.Fatalf("status = %s, want CONFIRMED", c.Status)
	}
	if c.EndDate == nil || !c.EndDate.Equal(day("2025-07-12")) {
		t.Fatalf("end date not mapped: %v", c.EndDate)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindOverlapsExcludesEventBeingEdited(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("AND e.id <>").
		WithArgs(day("2025-07-12"), day("2025-07-10"), int64(7)).
		WillReturnRows(overlapRows(0))

	repo := EventRepository{DB: db}
	end := day("2025-07-12")
	got, err := repo.FindOverlaps(scheduling.NewDateRange(day("2025-07-10"), &end), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no conflicts, got %d", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindOverlapsIdempotentRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT e.id, e.quote_id").WillReturnRows(overlapRows(2))
	mock.ExpectQuery("SELECT e.id, e.quote_id").WillReturnRows(overlapRows(2))

	repo := EventRepository{DB: db}
	rg := scheduling.NewDateRange(day("2025-07-11"), nil)
	first, err := repo.FindOverlaps(rg, 0)
	if err != nil {
		t.Fatalf("first read error: %v", err)
	}
	second, err := repo.FindOverlaps(rg, 0)
	if err != nil {
		t.Fatalf("second read error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("reads differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].EventID != second[i].EventID || first[i].Status != second[i].Status {
			t.Fatalf("row %d differs between reads", i)
		}
	}
}

func TestFindOverlapsNullEndDateMeansSingleDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "quote_id", "start_date", "end_date", "status", "name"}).
		AddRow(int64(5), int64(50), day("2025-08-01"), nil, "LOGISTICS", "Acme")
	mock.ExpectQuery("SELECT e.id, e.quote_id").WillReturnRows(rows)

	repo := EventRepository{DB: db}
	got, err := repo.FindOverlaps(scheduling.NewDateRange(day("2025-08-01"), nil), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(got))
	}
	if got[0].EndDate != nil {
		t.Fatalf("null end_date should stay nil, got %v", got[0].EndDate)
	}
	if got[0].Status != domain.EventLogistics {
		t.Fatalf("status = %s, want LOGISTICS", got[0].Status)
	}
}

func TestUpdateStatusMissingEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE events SET status").
		WithArgs("CANCELLED", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM events WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	repo := EventRepository{DB: db}
	err = repo.UpdateStatus(99, domain.EventCancelled)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
