// Package errs defines the error taxonomy shared by the waveform packages.
package errs

import (
	"errors"
	"fmt"
)

// Error classes. Concrete errors wrap one of these, so callers can test the
// class with errors.Is.
var (
	// ErrConfiguration reports a request the model cannot serve as configured.
	ErrConfiguration = errors.New("configuration error")

	// ErrDomain reports physical inputs outside the model's validated domain.
	ErrDomain = errors.New("domain validation error")

	// ErrLookup reports a mode that is not part of the physical catalogue.
	ErrLookup = errors.New("lookup error")
)

// ValidationError provides detailed information about a domain check failure.
type ValidationError struct {
	Field   string  // Parameter or array that failed (e.g. "e0", "t")
	Value   float64 // Offending value
	Index   int     // Sample index for array checks, -1 otherwise
	Details string  // Human readable constraint
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: %s[%d] = %g: %s", ErrDomain, e.Field, e.Index, e.Value, e.Details)
	}
	return fmt.Sprintf("%s: %s = %g: %s", ErrDomain, e.Field, e.Value, e.Details)
}

// Unwrap makes every ValidationError match ErrDomain.
func (e *ValidationError) Unwrap() error {
	return ErrDomain
}

// Invalid returns a ValidationError for a scalar parameter.
func Invalid(field string, value float64, details string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Index: -1, Details: details}
}

// InvalidAt returns a ValidationError for one sample of an array.
func InvalidAt(field string, index int, value float64, details string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Index: index, Details: details}
}
