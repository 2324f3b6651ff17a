package errors

import (
	"net/http"
	"sort"
	"strings"
)

// ValidationError accumulates field-keyed validation failures so that one
// request can report every broken field at once instead of failing on the
// first. Message values are stable keys for the presentation layer to
// localize, not rendered sentences.
type ValidationError struct {
	fields map[string][]string
}

// NewValidationError creates an empty accumulator.
func NewValidationError() *ValidationError {
	return &ValidationError{fields: make(map[string][]string)}
}

// Add records a message key for a field. Duplicate keys per field are kept
// in insertion order.
func (e *ValidationError) Add(field, messageKey string) *ValidationError {
	e.fields[field] = append(e.fields[field], messageKey)

	return e
}

// HasErrors reports whether any failure was recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.fields) > 0
}

// Fields returns the accumulated field → message-key map.
func (e *ValidationError) Fields() map[string][]string {
	return e.fields
}

// ErrOrNil returns the accumulator as an error when it holds failures,
// otherwise nil. Callers must use this instead of returning the accumulator
// directly, or a nil *ValidationError would flow as a non-nil error.
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}

	return nil
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "validation failed: " + e.Details()
}

// HTTPCode returns the HTTP status code.
func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code.
func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

// Message returns the human-readable error message.
func (e *ValidationError) Message() string {
	return "input validation failed"
}

// Details renders the field map as "field: key1, key2; ..." with fields in
// deterministic order.
func (e *ValidationError) Details() string {
	names := make([]string, 0, len(e.fields))
	for name := range e.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.fields[name], ", "))
	}

	return strings.Join(parts, "; ")
}
