// Package validators adapts go-playground/validator to Echo's Validator
// interface and shapes validation failures into field-keyed messages.
package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps a shared validator instance for Echo.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// FieldErrors flattens a validator error into a field-keyed message map.
// Non-validator errors map to a single "detail" entry.
func FieldErrors(err error) map[string]string {
	fields := make(map[string]string)

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["detail"] = err.Error()
		return fields
	}

	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = "This field is required"
		case "email":
			fields[name] = "Invalid email address"
		case "uuid":
			fields[name] = "Invalid uuid"
		case "min":
			fields[name] = "Value too short"
		case "max":
			fields[name] = "Value too long"
		default:
			fields[name] = "Invalid value"
		}
	}
	return fields
}
