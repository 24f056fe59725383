package entities

import (
	"fmt"
	"strings"
)

// ValidationResult represents the outcome of validating a request or descriptor.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError represents a specific validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Add records a failure and marks the result invalid.
func (r *ValidationResult) Add(field, format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Summary joins all errors into one multi-line message.
func (r *ValidationResult) Summary() string {
	var b strings.Builder
	b.WriteString("validation failed:")
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "\n- %s: %s", e.Field, e.Message)
	}
	return b.String()
}
