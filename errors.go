package uutreport

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by tree mutations. All violations are raised at
// the point of the call and leave the tree unchanged.
var (
	// ErrInvalidArgument indicates a measurement name supplied or omitted
	// against the step family's requirement, or an operation invoked on a
	// step kind that does not support it
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCapacityExceeded indicates a measurement or series count bound was
	// hit, or a chart/attachment already exists on the step
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrDuplicateName indicates a measurement name collision within a
	// multiple-family step
	ErrDuplicateName = errors.New("duplicate name")

	// ErrUnsupportedOperator indicates a comparison operator outside its
	// closed set
	ErrUnsupportedOperator = errors.New("unsupported operator")
)

// ValidationError reports a field-level constraint violation on an entity
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// checkLen enforces a string length constraint, returning a ValidationError
// when the value is out of bounds
func checkLen(field, value string, min, max int) error {
	if len(value) < min {
		if min == 1 {
			return &ValidationError{Field: field, Reason: "must not be empty"}
		}

		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be at least %d characters", min)}
	}
	if max > 0 && len(value) > max {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be at most %d characters", max)}
	}

	return nil
}
