// Package validation provides custom validation rules for the application.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/modelgate/internal/errors"
)

// usernameRegex excludes ':' so usernames survive the basic credentials split.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._\-]+$`)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PasswordStrength bounds the password length in bytes. A zero MaxLength disables the upper bound.
type PasswordStrength struct {
	MinLength int
	MaxLength int
}

// Validate implements validation.Rule.
func (p PasswordStrength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_type", "password must be a string")
	}
	if len(s) < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			fmt.Sprintf("password must be at least %d characters", p.MinLength),
		)
	}
	if p.MaxLength > 0 && len(s) > p.MaxLength {
		return validation.NewError(
			"validation_password_max_length",
			fmt.Sprintf("password must be at most %d characters", p.MaxLength),
		)
	}
	return nil
}

// Username validates the allowed username alphabet
var Username = validation.NewStringRuleWithError(
	usernameRegex.MatchString,
	validation.NewError(
		"validation_username_format",
		"must contain only letters, digits, dots, underscores or hyphens",
	),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// IsString requires a JSON string value.
var IsString = validation.By(func(value interface{}) error {
	if _, ok := value.(string); !ok {
		return validation.NewError("validation_type_string", "must be a string")
	}
	return nil
})

// IsNumber requires a JSON number value.
var IsNumber = validation.By(func(value interface{}) error {
	switch value.(type) {
	case float64, float32, int, int32, int64:
		return nil
	default:
		return validation.NewError("validation_type_number", "must be a number")
	}
})

// IsBoolean requires a JSON boolean value.
var IsBoolean = validation.By(func(value interface{}) error {
	if _, ok := value.(bool); !ok {
		return validation.NewError("validation_type_boolean", "must be a boolean")
	}
	return nil
})
