package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/bradenpeterson/JournalApp/pkg/dates"
)

// ------------------------------
// Shared Errors
// ------------------------------

// ErrNotFound is returned when a date-keyed lookup has nothing to resolve to.
var ErrNotFound = errors.New("not found")

// ------------------------------
// Validation helpers
// ------------------------------

// ValidateID rejects non-positive ids before a request is built.
func ValidateID(id int64, field string) error {
	if id <= 0 {
		return fmt.Errorf("%s must be a positive id", field)
	}
	return nil
}

// ValidateDate requires a well-formed YYYY-MM-DD day.
func ValidateDate(s, field string) error {
	if !dates.Valid(s) {
		return fmt.Errorf("%s must be a YYYY-MM-DD date, got %q", field, s)
	}
	return nil
}

// ValidateMonthDay requires "MM-DD".
func ValidateMonthDay(s string) error {
	if len(s) != 5 || s[2] != '-' || !govalidator.IsNumeric(s[:2]) || !govalidator.IsNumeric(s[3:]) {
		return fmt.Errorf("month_day must be MM-DD, got %q", s)
	}
	return nil
}

// ValidateMood requires a value on the 1..5 scale.
func ValidateMood(m MoodValue) error {
	if !m.Valid() {
		return fmt.Errorf("mood must be one of 1..5, got %q", string(m))
	}
	return nil
}

// ValidateTagName rejects blank names and names over the server's limit.
func ValidateTagName(name string) error {
	n := strings.TrimSpace(name)
	if n == "" {
		return errors.New("tag name is required")
	}
	if len(n) > 50 {
		return fmt.Errorf("tag name must be at most 50 characters")
	}
	return nil
}

// ValidateCredentials checks the sign-in form before posting it.
func ValidateCredentials(c Credentials) error {
	if !govalidator.IsEmail(c.Email) {
		return fmt.Errorf("invalid email %q", c.Email)
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// ValidateSignUp checks the sign-up form before posting it.
func ValidateSignUp(in SignUpInput) error {
	return ValidateCredentials(Credentials{Email: in.Email, Password: in.Password})
}
