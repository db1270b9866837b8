package web

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError is a single human-readable payload violation.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// NewValidationError wraps a message as a ValidationError.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// NewValidator creates a validator that reports fields by their json names,
// so violation messages match the wire format rather than Go field names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FirstViolation reduces a validator error to the message for the first
// failing field. Fields are checked in struct declaration order, which keeps
// the reported violation deterministic when several fields are invalid.
func FirstViolation(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "invalid payload"
	}
	fieldErr := validationErrors[0]
	field := fieldErr.Field()
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "min":
		return fmt.Sprintf("%q length must be at least %s characters long", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fieldErr.Param())
	case "gt":
		return fmt.Sprintf("%q must be a positive number", field)
	case "uri":
		return fmt.Sprintf("%q must be a valid uri", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
