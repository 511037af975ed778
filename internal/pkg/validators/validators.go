package validators

import (
	"errors"
	"medportal-service/internal/pkg/exceptions"
	"medportal-service/internal/pkg/utils"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Result struct {
	Field   string
	Valid   bool
	Message string
}

func Required(field, value string) Result {
	return check(field, value, "required")
}

func Username(field, value string) Result {
	return check(field, value, "required,username")
}

func Email(field, value string) Result {
	return check(field, value, "required,email")
}

func Password(field, value string) Result {
	return check(field, value, "required,password")
}

func Phone(field, value string) Result {
	return check(field, value, "required,phone")
}

// Date accepts YYYY-MM-DD calendar dates.
func Date(field, value string) Result {
	return check(field, value, "required,date")
}

func OneOf(field, value string, options ...string) Result {
	return check(field, value, "required,oneof="+strings.Join(options, " "))
}

// Match checks a confirmation value against the value it confirms.
func Match(field, value, otherField, otherValue string) Result {
	if strings.TrimSpace(value) == "" {
		return Required(field, value)
	}
	if value != otherValue {
		return Result{
			Field:   field,
			Message: field + " " + exceptions.FormatTagMessage("eqfield", otherField),
		}
	}
	return Result{Field: field, Valid: true}
}

// check validates the trimmed value, so whitespace never satisfies "required".
func check(field, value, tag string) Result {
	err := utils.ValidateVar(strings.TrimSpace(value), tag)
	if err == nil {
		return Result{Field: field, Valid: true}
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		failed := validationErrors[0]
		return Result{
			Field:   field,
			Message: field + " " + exceptions.FormatTagMessage(failed.Tag(), failed.Param()),
		}
	}
	return Result{Field: field, Message: field + " is invalid"}
}
