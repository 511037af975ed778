package utils

import (
	"medportal-service/internal/pkg/constvars"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	specialCharRegex = regexp.MustCompile(constvars.RegexContainAtLeastOneSpecialChar)
	uppercaseRegex   = regexp.MustCompile(constvars.RegexContainAtLeastOneUppercase)
	lowercaseRegex   = regexp.MustCompile(constvars.RegexContainAtLeastOneLowercase)
	digitRegex       = regexp.MustCompile(constvars.RegexContainAtLeastOneDigit)
	usernameRegex    = regexp.MustCompile(constvars.RegexUsername)
	phoneRegex       = regexp.MustCompile(constvars.RegexPhoneNumber)
	dateRegex        = regexp.MustCompile(constvars.RegexDateYYYYMMDD)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("password", validatePassword)
	validate.RegisterValidation("username", validateUsername)
	validate.RegisterValidation("phone", validatePhoneNumber)
	validate.RegisterValidation("date", validateDate)
	validate.RegisterValidation("user_type", validateUserType)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateVar checks a single value against a validator tag expression.
func ValidateVar(value interface{}, tag string) error {
	return validate.Var(value, tag)
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	return len(password) >= 8 &&
		specialCharRegex.MatchString(password) &&
		uppercaseRegex.MatchString(password) &&
		lowercaseRegex.MatchString(password) &&
		digitRegex.MatchString(password)
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func validateDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !dateRegex.MatchString(value) {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func validateUserType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case constvars.UserTypeDoctor, constvars.UserTypePatient, constvars.UserTypeReceptionist:
		return true
	default:
		return false
	}
}
