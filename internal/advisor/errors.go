package advisor

import (
	"errors"
	"fmt"
)

// Failure taxonomy for a single generation invocation. Every one of these
// aborts the invocation with no row written; none of them can reach or
// crash the read API.
var (
	// ErrUnparsableResponse: model output was not valid structured data
	// after the bounded retry.
	ErrUnparsableResponse = errors.New("unparsable model response")

	// ErrTransport: network error, timeout, or rate limit from the model
	// service. Safe to retry at the orchestration layer on a later run.
	ErrTransport = errors.New("model transport failure")

	// ErrValidation: model output parsed but violated a field constraint.
	ErrValidation = errors.New("advice validation failure")

	// ErrDatabaseWrite: storage rejected the insert after validation
	// passed. The candidate is discarded; re-running the generator will
	// not help until the storage issue is addressed.
	ErrDatabaseWrite = errors.New("database write failure")
)

// ValidationError reports the first field constraint a candidate violated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: field %q %s", ErrValidation, e.Field, e.Reason)
}

// Unwrap lets callers match the category with errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
