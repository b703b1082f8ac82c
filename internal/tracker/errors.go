package tracker

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound is returned when an update or removal names an id the
// store does not hold.
var ErrRecordNotFound = errors.New("time record not found")

// ValidationError describes why a record or a time range was rejected.
// Nothing is stored when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
