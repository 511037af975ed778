package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	testCases := []struct {
		name     string
		result   Result
		valid    bool
		expected string
	}{
		{"email ok", Email("email", "a@b.com"), true, ""},
		{"email invalid", Email("email", "not-an-email"), false, "email must be a valid email"},
		{"email missing", Email("email", ""), false, "email is required"},
		{"username ok", Username("username", "ada_l"), true, ""},
		{"username invalid", Username("username", "a!"), false, "username must be 3-20 characters of letters, digits or underscore"},
		{"password weak", Password("password", "password"), false, "password must be at least 8 characters long and contain an uppercase letter, a lowercase letter, a digit and a special character"},
		{"password ok", Password("password", "Passw0rd!"), true, ""},
		{"phone ok", Phone("phone", "+6281234567890"), true, ""},
		{"phone invalid", Phone("phone", "0812"), false, "phone must be a valid phone number"},
		{"date ok", Date("dateOfBirth", "1990-05-17"), true, ""},
		{"date invalid", Date("dateOfBirth", "17-05-1990"), false, "dateOfBirth must be a date in YYYY-MM-DD format"},
		{"one of ok", OneOf("gender", "female", "male", "female", "other"), true, ""},
		{"one of invalid", OneOf("gender", "x", "male", "female"), false, "gender must be one of [male, female]"},
		{"required", Required("specialization", "Cardiology"), true, ""},
		{"required missing", Required("specialization", ""), false, "specialization is required"},
		{"required whitespace only", Required("specialization", " \t "), false, "specialization is required"},
		{"email padded", Email("email", " a@b.com "), true, ""},
		{"match whitespace only", Match("confirmPassword", "  ", "password", "Passw0rd!"), false, "confirmPassword is required"},
		{"match ok", Match("confirmPassword", "Passw0rd!", "password", "Passw0rd!"), true, ""},
		{"match mismatch", Match("confirmPassword", "Passw0rd?", "password", "Passw0rd!"), false, "confirmPassword must match password"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.result.Valid)
			assert.Equal(t, tc.expected, tc.result.Message)
			assert.NotEmpty(t, tc.result.Field)
		})
	}
}
