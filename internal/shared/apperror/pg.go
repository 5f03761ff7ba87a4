package apperror

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation reports whether err is a unique-constraint violation,
// optionally on a specific constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// FromStorage classifies a repository error: connection-class failures become
// StorageUnavailable (503), everything else stays Internal so logic bugs are
// not mistaken for outages.
func FromStorage(err error, message string) *Error {
	if isConnectionError(err) {
		return Wrap(KindStorageUnavailable, "storage unavailable", err)
	}
	return Wrap(KindInternal, message, err)
}

func isConnectionError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: connection exception, class 57: operator intervention.
		if len(pgErr.Code) >= 2 {
			class := pgErr.Code[:2]
			return class == "08" || class == "57"
		}
	}

	return false
}
