package store

import (
	"errors"
	"fmt"
	"regexp"
)

// Common store errors. Database failures are classified into exactly one of
// these categories by the execution layer; callers branch with errors.Is.
var (
	// ErrConflict is returned when an operation would violate a uniqueness
	// or integrity constraint (e.g. a duplicate username or favorite pair).
	// Conflicts are terminal and never retried.
	ErrConflict = errors.New("constraint conflict")

	// ErrExecutionFailed is returned for non-recoverable database errors and
	// for recoverable errors that exhausted their retry budget. The wrapped
	// cause is preserved.
	ErrExecutionFailed = errors.New("execution failed")

	// ErrRollbackFailed is returned when the rollback attempted after a
	// failed operation itself failed. Always fatal for that call.
	ErrRollbackFailed = errors.New("rollback failed")
)

// keyDetailPattern matches the PostgreSQL unique-violation detail text,
// e.g. `Key (username)=(alice) already exists.`
var keyDetailPattern = regexp.MustCompile(`Key \((.+?)\)=\((.+?)\)`)

// ConflictError reports a uniqueness constraint violation together with the
// offending column and value extracted from the driver diagnostics, so the
// caller can build a user-facing message.
type ConflictError struct {
	Column string // violating column, "" if it could not be determined
	Value  string // violating value, "" if it could not be determined
	Err    error  // underlying driver error
}

func (e *ConflictError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("conflict on %s=%s: %v", e.Column, e.Value, e.Err)
	}
	return fmt.Sprintf("conflict: %v", e.Err)
}

// Unwrap makes errors.Is(err, ErrConflict) hold for every ConflictError.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError builds a ConflictError, parsing the column and value out
// of the driver detail text when present.
func NewConflictError(detail string, err error) *ConflictError {
	ce := &ConflictError{Err: err}
	if m := keyDetailPattern.FindStringSubmatch(detail); m != nil {
		ce.Column = m[1]
		ce.Value = m[2]
	}
	return ce
}

// RollbackError carries both the rollback failure and the original error
// that triggered the rollback.
type RollbackError struct {
	RollbackErr error
	Cause       error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("rollback failed: %v (original error: %v)", e.RollbackErr, e.Cause)
}

// Unwrap makes errors.Is(err, ErrRollbackFailed) hold for every RollbackError.
func (e *RollbackError) Unwrap() error {
	return ErrRollbackFailed
}

// IsConflict reports whether err is a constraint conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
