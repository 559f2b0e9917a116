package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a rental, payment, car or user id does
	// not resolve to a row.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict is returned when a conditional status update loses
	// to a concurrent writer.
	ErrVersionConflict = errors.New("version conflict: record was modified concurrently")
)

// InvalidOperationError signals a domain invariant violation: a transition
// attempted from the wrong state, an unmet deposit, a driver who has not
// accepted. Persisted state is left unchanged and the reason is safe to show
// to the end user.
type InvalidOperationError struct {
	Op     string
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// NewInvalidOperation builds an InvalidOperationError with a formatted reason.
func NewInvalidOperation(op, format string, args ...any) error {
	return &InvalidOperationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// IsInvalidOperation reports whether err is a domain invariant violation.
func IsInvalidOperation(err error) bool {
	var ive *InvalidOperationError
	return errors.As(err, &ive)
}
