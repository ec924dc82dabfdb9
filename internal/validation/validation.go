// Package validation holds the side-effect-free input checks shared by the
// HTTP handlers. Each request struct exposes Validate() returning the full
// list of field errors so the caller sees every problem at once.
package validation

import (
	"fmt"
	"regexp"
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,}$`)
)

// FieldError pairs a request field with a human-readable problem.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func Required(errs []FieldError, field, value string) []FieldError {
	if value == "" {
		return append(errs, FieldError{Field: field, Message: field + " is required"})
	}
	return errs
}

func MinLen(errs []FieldError, field, value string, min int) []FieldError {
	if len(value) < min {
		return append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s length min %d character", field, min)})
	}
	return errs
}

func MaxLen(errs []FieldError, field, value string, max int) []FieldError {
	if len(value) > max {
		return append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s length max %d character", field, max)})
	}
	return errs
}

func Min(errs []FieldError, field string, value, min int64) []FieldError {
	if value < min {
		return append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s must be at least %d", field, min)})
	}
	return errs
}

func Email(errs []FieldError, field, value string) []FieldError {
	if !emailRe.MatchString(value) {
		return append(errs, FieldError{Field: field, Message: "invalid email"})
	}
	return errs
}

func Phone(errs []FieldError, field, value string) []FieldError {
	if !phoneRe.MatchString(value) {
		return append(errs, FieldError{Field: field, Message: "invalid phone number"})
	}
	return errs
}
