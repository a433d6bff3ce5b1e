package request

import "fmt"

// InvalidInputError reports a request field whose value cannot be normalised.
type InvalidInputError struct {
	Field  string      // Name of the offending field
	Value  interface{} // Value as received
	Reason string      // Why it was rejected
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input for field %q (%T %v): %s", e.Field, e.Value, e.Value, e.Reason)
}

// NewInvalidInputError creates a new InvalidInputError.
func NewInvalidInputError(field string, value interface{}, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Value: value, Reason: reason}
}
