package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "eventscrm/internal/config"
	"eventscrm/internal/domain"
	"eventscrm/internal/domain/models"
)

type ClientRepository struct {
	DB *sql.DB
}

func (r ClientRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ClientRepository) GetByID(id int64) (models.Client, error) {
	if id <= 0 {
		return models.Client{}, domain.ValidationError{Field: "clientId", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return models.Client{}, domain.TransientError{Op: "get client", Err: errors.New("db not connected")}
	}

	var c models.Client
	err := db.QueryRow(`
		SELECT id, name, COALESCE(email, ''), COALESCE(phone, '')
		FROM clients
		WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Client{}, domain.NotFoundError{Resource: "client"}
		}
		return models.Client{}, classifySQLError("get client", err)
	}
	return c, nil
}

// Create inserts a new client and returns it with the generated id.
func (r ClientRepository) Create(c models.Client) (models.Client, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return models.Client{}, domain.ValidationError{Field: "client.name", Msg: "required"}
	}
	db := r.db()
	if db == nil {
		return models.Client{}, domain.TransientError{Op: "create client", Err: errors.New("db not connected")}
	}

	res, err := db.Exec(`
		INSERT INTO clients (name, email, phone, created_at)
		VALUES (?, ?, ?, NOW())
	`, c.Name, strings.TrimSpace(c.Email), strings.TrimSpace(c.Phone))
	if err != nil {
		return models.Client{}, classifySQLError("create client", err)
	}
	c.ID, _ = res.LastInsertId()
	return c, nil
}
