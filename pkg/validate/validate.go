// Package validate wraps struct-tag validation and the password policies the
// signup endpoints enforce.
package validate

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates request DTOs by their validate tags.
func Struct(s any) error {
	return v.Struct(s)
}

// AdminPassword enforces the strict policy gating privileged accounts:
// at least 10 characters with upper, lower, digit, and special.
func AdminPassword(pw string) bool {
	if len(pw) < 10 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}

// UserPassword is the lighter policy for instructor and learner accounts.
func UserPassword(pw string) bool {
	return len(pw) >= 6
}
