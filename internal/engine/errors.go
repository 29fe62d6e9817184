package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/fanosum/internal/polytope"
)

// ConfigurationError reports an invalid dimension, simplex dimension,
// dimension range or page. It is returned before any catalog access.
type ConfigurationError struct {
	// Field names the offending option or argument.
	Field string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError reports a candidate with no isomorphic catalog record.
type NotFoundError struct {
	// Invariants is the candidate's invariant tuple.
	Invariants polytope.Invariants

	// Shortlisted is the number of records sharing those invariants that
	// were tested and rejected.
	Shortlisted int
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Shortlisted == 0 {
		return fmt.Sprintf("no catalog record with invariants %s", e.Invariants)
	}
	return fmt.Sprintf("none of %d catalog records with invariants %s is isomorphic",
		e.Shortlisted, e.Invariants)
}

// ErrModeMismatch is returned when merging result sets of different modes.
var ErrModeMismatch = errors.New("result set modes differ")

// IsConfigurationError returns true if err is a ConfigurationError.
// Uses errors.As to handle wrapped errors.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsNotFound returns true if err is a NotFoundError.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func configError(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
