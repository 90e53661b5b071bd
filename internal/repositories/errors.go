package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound covers both an unknown external id and an id the caller does
// not own on a mutating operation. The two are deliberately the same error
// so handlers cannot disclose existence.
var ErrNotFound = errors.New("not found")

// ValidationError carries field-keyed messages suitable for the error
// envelope of a 400 response.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// translateError maps persistence failures to the repository taxonomy:
// missing rows become ErrNotFound, constraint violations become validation
// errors with the driver message preserved, everything else passes through.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "violates") ||
		strings.Contains(msg, "constraint failed") {
		return NewValidationError("detail", msg)
	}
	return err
}
