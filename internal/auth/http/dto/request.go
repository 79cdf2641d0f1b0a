// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
	customValidation "github.com/allisson/modelgate/internal/validation"
)

// SignupRequest contains the parameters for registering a new user.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"` //nolint:gosec // plaintext, hashed before storage
	Role     string `json:"role"`
}

// Validate checks if the signup request is valid. An empty role is accepted and
// resolved to the default role by the use case.
func (r *SignupRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Username,
			validation.Length(3, 64),
		),
		validation.Field(&r.Password,
			validation.Required,
			customValidation.PasswordStrength{MinLength: 8, MaxLength: 128},
		),
		validation.Field(&r.Role,
			validation.In(roleValues()...).Error("must be one of admin, editor, user"),
		),
	)
}

// ToInput converts the request to the use case input.
func (r *SignupRequest) ToInput() *authDomain.CreateUserInput {
	return &authDomain.CreateUserInput{
		Username: r.Username,
		Password: r.Password,
		Role:     authDomain.Role(r.Role),
	}
}

func roleValues() []interface{} {
	values := make([]interface{}, 0, len(authDomain.Roles))
	for _, role := range authDomain.Roles {
		values = append(values, string(role))
	}
	return values
}
