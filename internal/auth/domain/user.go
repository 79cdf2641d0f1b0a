package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// User is an account that can authenticate against the API.
//
// Capabilities are copied from the role table when the user is created and stored
// alongside the user, so request-time authorization never consults the role table.
type User struct {
	ID           uuid.UUID    // Unique identifier (UUIDv7)
	Username     string       // Unique login name
	PasswordHash string       //nolint:gosec // Argon2id hash, never the plaintext
	Role         Role         // Role the capabilities were derived from
	Capabilities []Capability // Denormalized capability set
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasCapability reports whether the user holds the capability.
func (u *User) HasCapability(capability Capability) bool {
	return slices.Contains(u.Capabilities, capability)
}

// CreateUserInput contains the parameters for creating a new user.
type CreateUserInput struct {
	Username string
	Password string //nolint:gosec // plaintext, hashed before storage
	Role     Role
}
