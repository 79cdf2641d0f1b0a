// Package service provides technical services for authentication operations.
//
// It covers password hashing, signed bearer tokens, derivation of the token signing
// key and the role to capability table.
package service

import (
	"github.com/google/uuid"

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
)

// PasswordService defines operations for hashing and checking user passwords.
type PasswordService interface {
	// Hash hashes a plain text password for storage.
	Hash(password string) (string, error)

	// Compare reports whether the plain text password matches the stored hash.
	// Malformed hashes never match.
	Compare(password, hash string) bool
}

// TokenService issues and verifies stateless signed bearer tokens.
//
// Tokens only carry the user identifier. Callers re-resolve the user on every request,
// so capability changes take effect without reissuing tokens.
type TokenService interface {
	// Issue signs a token for the user identifier.
	Issue(userID uuid.UUID) (string, error)

	// Verify checks signature, algorithm, issuer and expiry and returns the user identifier.
	// Any failure is reported as domain.ErrInvalidToken.
	Verify(token string) (uuid.UUID, error)
}

// RoleService resolves roles to capability sets from the fixed role table.
type RoleService interface {
	// CapabilitiesOf returns the capabilities granted to role in canonical order.
	// Returns domain.ErrUnknownRole for roles missing from the table.
	CapabilitiesOf(role authDomain.Role) ([]authDomain.Capability, error)

	// Table returns the full role to capability table.
	Table() map[authDomain.Role][]authDomain.Capability
}
