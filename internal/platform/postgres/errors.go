package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pmorris/tasktrack-api/internal/store"
)

// PostgreSQL error codes
const (
	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"

	// invalidDatetimeFormatCode is the PostgreSQL error code for malformed date input
	invalidDatetimeFormatCode = "22007"
)

// MapError maps a database error to an appropriate store error.
// It wraps the original error to preserve context for debugging.
// This function should be used in all database operations to ensure
// consistent error handling.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	// A statement that matched no row is a missing task on every query
	// this store runs.
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrTaskNotFound, err)
	}

	// Annotate PostgreSQL constraint failures with the offending column
	// so the wrapped error is actionable in logs.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case notNullViolationCode:
			return fmt.Errorf("not null violation (%s): %w", pgErr.ColumnName, err)
		case invalidDatetimeFormatCode:
			return fmt.Errorf("invalid date value: %w", err)
		}
	}

	// Return the original error for errors that don't have specific mappings
	return err
}
