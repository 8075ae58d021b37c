package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "{field} is required",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be at least {param}",
	"max":      "{field} must be at most {param}",
	"oneof":    "{field} must be one of {param}",
	"email":    "{field} must be a valid email address",
	"url":      "{field} must be a valid URL",
	"dateonly": "{field} must be a date in YYYY-MM-DD format",
}

// message renders the first validation failure that has a template. The
// namespace is used so nested passenger fields read as
// passenger_details[0].fullname.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrors {
		template, ok := messages[fieldErr.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer(
			"{field}", field(fieldErr),
			"{param}", fieldErr.Param(),
		).Replace(template)
	}

	return fieldErrors.Error()
}

// field drops the root struct name from the namespace.
func field(fieldErr val.FieldError) string {
	_, path, found := strings.Cut(fieldErr.Namespace(), ".")
	if !found {
		return fieldErr.Field()
	}

	return path
}
