package repositories

import (
	"context"
	"database/sql/driver"
	"errors"

	"eventscrm/internal/domain"

	"github.com/go-sql-driver/mysql"
)

const (
	mysqlErrDuplicateEntry = 1062
	mysqlErrLockWait       = 1205
	mysqlErrDeadlock       = 1213
)

// classifySQLError maps driver failures onto the domain taxonomy. Lock waits
// and deadlocks are retryable; a duplicate key on events.quote_id means the
// aggregate invariant was about to break.
func classifySQLError(op string, err error) error {
	if err == nil {
		return nil
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlErrDuplicateEntry:
			return domain.ConflictError{Resource: "booking", Msg: "duplicate entry", Err: err}
		case mysqlErrLockWait, mysqlErrDeadlock:
			return domain.TransientError{Op: op, Err: err}
		}
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return domain.TransientError{Op: op, Err: err}
	}
	return domain.InternalError{Msg: op + " failed", Err: err}
}
