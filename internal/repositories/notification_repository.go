package repositories

import (
	"database/sql"
	"errors"

	intconfig "eventscrm/internal/config"
	intdb "eventscrm/internal/db"
	"eventscrm/internal/domain"
)

type NotificationRepository struct {
	DB *sql.DB
}

func (r NotificationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Create inserts one notification row. Callers treat this as fire-and-forget;
// errors are returned for logging only and must never fail a booking.
func (r NotificationRepository) Create(userID int64, ntype, title, message, metadata string) error {
	db := r.db()
	if db == nil {
		return domain.TransientError{Op: "create notification", Err: errors.New("db not connected")}
	}
	if err := r.ensureTable(db); err != nil {
		return domain.InternalError{Msg: "notifications table unavailable", Err: err}
	}

	_, err := db.Exec(`
		INSERT INTO notifications (user_id, type, title, message, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())
	`, userID, ntype, title, message, intdb.NullIfEmpty(metadata))
	if err != nil {
		return classifySQLError("create notification", err)
	}
	return nil
}

func (r NotificationRepository) ensureTable(db *sql.DB) error {
	if intdb.HasTable(db, "notifications") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS notifications (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	type VARCHAR(50) NOT NULL,
	title VARCHAR(255) NOT NULL,
	message TEXT NOT NULL,
	metadata JSON NULL,
	read_at TIMESTAMP NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_user (user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}
