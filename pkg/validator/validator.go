// Package validator validates request DTOs with go-playground/validator
// struct tags and turns the result into per-field messages fit for an API
// response.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

// newValidate builds the validator with field names taken from json tags,
// so the fields map in error responses matches the request body the client
// actually sent.
func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks s against its validate tags. On failure it returns a
// *ValidationError carrying every failed field.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		return &ValidationError{Errors: verrs}
	}
	return err
}

// ValidationError aggregates field-level failures.
type ValidationError struct {
	Errors validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("field '%s' %s", fe.Field(), describe(fe)))
	}
	return strings.Join(msgs, "; ")
}

// Fields maps each failed field name to its message.
func (e *ValidationError) Fields() map[string]string {
	fields := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		fields[fe.Field()] = describe(fe)
	}
	return fields
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}
