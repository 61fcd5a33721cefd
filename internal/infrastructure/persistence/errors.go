package persistence

import (
	"errors"
	"strings"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes that mean "retry later"
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
	sqlStateUniqueViolation      = "23505"
)

// translateError maps driver errors that signal lock contention or a
// unique key collision to a retryable concurrency conflict. Other errors
// are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	// TranslateError turns unique violations into gorm.ErrDuplicatedKey on both dialects
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewConcurrencyConflict("Resource already exists, please retry")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
			return shared.NewConcurrencyConflict("Resource is locked by another operation, please retry")
		case sqlStateUniqueViolation:
			return shared.NewConcurrencyConflict("Resource already exists, please retry")
		}
		return err
	}

	// sqlite reports lock contention as SQLITE_BUSY / SQLITE_LOCKED
	msg := err.Error()
	if strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked") {
		return shared.NewConcurrencyConflict("Resource is locked by another operation, please retry")
	}
	return err
}

func staleWrite(resource string) error {
	return shared.NewConcurrencyConflict(resource + " was modified by another operation, please retry")
}
