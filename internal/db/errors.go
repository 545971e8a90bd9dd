// Package db holds the PostgreSQL connection pool and the catalog error taxonomy.
package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a requested record is not found.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when attempting to insert a duplicate record.
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrInvalidArgument is returned for missing required fields or malformed input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStoreUnavailable is returned when the underlying store fails.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrBlockedContent is returned when a new video matches a blocked term.
	ErrBlockedContent = fmt.Errorf("%w: content contains a blocked term", ErrInvalidArgument)
)

// WrapError wraps database errors with additional context and maps them to custom error types.
func WrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack.
	if IsNotFound(err) || IsDuplicateKey(err) || IsInvalidArgument(err) || IsStoreUnavailable(err) {
		return fmt.Errorf("%s: %w", operation, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", operation, ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505": // unique_violation
			return fmt.Errorf("%s: %w (constraint: %s)", operation, ErrDuplicateKey, pgErr.ConstraintName)
		case pgErr.Code == "23503": // foreign_key_violation
			return fmt.Errorf("%s: %w (constraint: %s)", operation, ErrNotFound, pgErr.ConstraintName)
		case pgErr.Code == "23502", pgErr.Code == "23514", strings.HasPrefix(pgErr.Code, "22"):
			return fmt.Errorf("%s: %w: %s", operation, ErrInvalidArgument, pgErr.Message)
		default:
			return fmt.Errorf("%s: %w: database error [%s]: %w", operation, ErrStoreUnavailable, pgErr.Code, err)
		}
	}

	return fmt.Errorf("%s: %w: %w", operation, ErrStoreUnavailable, err)
}

// IsNotFound returns true if the error is an ErrNotFound error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateKey returns true if the error is an ErrDuplicateKey error.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// IsInvalidArgument returns true if the error is an ErrInvalidArgument error.
// Blocked content counts as an invalid argument.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsStoreUnavailable returns true if the error is an ErrStoreUnavailable error.
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsBlockedContent returns true if the error is an ErrBlockedContent error.
func IsBlockedContent(err error) bool {
	return errors.Is(err, ErrBlockedContent)
}

// Kind names the taxonomy bucket of err, for logs and error envelopes.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsNotFound(err):
		return "NotFound"
	case IsDuplicateKey(err):
		return "DuplicateKey"
	case IsInvalidArgument(err):
		return "InvalidArgument"
	case IsStoreUnavailable(err):
		return "StoreUnavailable"
	default:
		return "Internal"
	}
}
