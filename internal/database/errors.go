package database

import (
	"errors"
	"fmt"

	"github.com/nfrund/cyberwatch/internal/domain"
)

// Common database errors that can be checked using errors.Is()
var (
	// ErrNotConnected is returned when no healthy connection is available.
	ErrNotConnected = errors.New("database not connected")

	// ErrQueryFailed is returned when a query execution fails.
	ErrQueryFailed = errors.New("query execution failed")

	// ErrCorruptStore is returned when the backing user file cannot be decoded.
	ErrCorruptStore = errors.New("user store is corrupt")
)

// DBError represents a database error with additional context.
type DBError struct {
	// The underlying error that was returned by the database driver.
	err error

	// Additional context about where the error occurred.
	context string

	// The query that was being executed when the error occurred.
	query string
}

// NewDBError creates a new DBError with the given error and context.
// The context should describe what operation was being performed when the error occurred.
func NewDBError(err error, context string) *DBError {
	return &DBError{
		err:     err,
		context: context,
	}
}

// WithQuery adds query information to the error.
func (e *DBError) WithQuery(query string) *DBError {
	e.query = query
	return e
}

// Error returns the error message.
func (e *DBError) Error() string {
	msg := e.context
	if e.query != "" {
		msg = fmt.Sprintf("%s\nQuery: %s", msg, e.query)
	}
	if e.err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *DBError) Unwrap() error {
	return e.err
}

// Is lets DBError match the storage sentinels and the domain errors it wraps.
func (e *DBError) Is(target error) bool {
	switch target {
	case ErrNotConnected, ErrQueryFailed, ErrCorruptStore,
		domain.ErrNotFound, domain.ErrUserAlreadyExists:
		return errors.Is(e.err, target)
	}
	return false
}
