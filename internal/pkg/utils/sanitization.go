package utils

import (
	"medportal-service/internal/pkg/dto/requests"
	"strings"
)

func SanitizeLoginRequest(input *requests.Login) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.UserType = strings.TrimSpace(strings.ToLower(input.UserType))
}

func SanitizeForgotPasswordRequest(input *requests.ForgotPassword) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.UserType = strings.TrimSpace(strings.ToLower(input.UserType))
}

func SanitizeResetPasswordRequest(input *requests.ResetPassword) {
	input.Token = strings.TrimSpace(input.Token)
}

func SanitizeCreatePostRequest(input *requests.CreatePost) {
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)
}

func SanitizeCreateCommentRequest(input *requests.CreateComment) {
	input.Content = strings.TrimSpace(input.Content)
}

// SanitizeWizardFields trims every value. Passwords are left untouched, emails are
// lowercased and phone numbers normalized.
func SanitizeWizardFields(fields map[string]string) map[string]string {
	sanitized := make(map[string]string, len(fields))
	for key, value := range fields {
		switch key {
		case "password", "confirmPassword":
			sanitized[key] = value
		case "email":
			sanitized[key] = strings.TrimSpace(strings.ToLower(value))
		case "phone":
			sanitized[key] = NormalizePhone(value)
		default:
			sanitized[key] = strings.TrimSpace(value)
		}
	}
	return sanitized
}
