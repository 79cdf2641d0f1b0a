package dto

import (
	"time"

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
)

// UserResponse represents a user in API responses. The password hash is never exposed.
type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	Capabilities []string  `json:"capabilities"`
	CreatedAt    time.Time `json:"created_at"`
}

// MapUserToResponse converts a domain user to an API response.
func MapUserToResponse(user *authDomain.User) UserResponse {
	capabilities := make([]string, 0, len(user.Capabilities))
	for _, capability := range user.Capabilities {
		capabilities = append(capabilities, string(capability))
	}
	return UserResponse{
		ID:           user.ID.String(),
		Username:     user.Username,
		Role:         string(user.Role),
		Capabilities: capabilities,
		CreatedAt:    user.CreatedAt,
	}
}

// AuthResponse is returned by signup and signin.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
