package exceptions

import (
	"errors"
	"medportal-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatFirstValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if err == nil || !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return constvars.ErrClientCannotProcessRequest
	}
	return formatFieldError(validationErrors[0])
}

func formatFieldError(fieldErr validator.FieldError) string {
	fieldName := strings.ToLower(fieldErr.Field())
	return fieldName + " " + FormatTagMessage(fieldErr.Tag(), fieldErr.Param())
}

// FormatTagMessage resolves the client-facing message for a validation tag.
func FormatTagMessage(tag, param string) string {
	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		return "is invalid"
	}
	if constvars.TagsWithParams[tag] {
		if tag == "oneof" {
			return strings.Replace(customMessage, "%s", strings.Join(strings.Fields(param), ", "), 1)
		}
		return strings.Replace(customMessage, "%s", param, 1)
	}
	return customMessage
}
