package input

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()

	// phonePattern accepts an optional +, then 2 to 15 digits not starting with 0.
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// IsValidEmail reports whether s is a syntactically valid email address.
// No DNS lookup is made.
func IsValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// IsValidPhone reports whether the sanitized form of s is a plain phone
// number: optional leading +, 2 to 15 digits, first digit 1-9.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(Sanitize(s))
}
