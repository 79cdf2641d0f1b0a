package domain

import (
	"github.com/allisson/modelgate/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrUserNotFound indicates a user with the specified ID or username was not found.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.Wrap(errors.ErrConflict, "username already taken")

	// ErrInvalidCredentials indicates an unknown username or a wrong password.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthenticated, "invalid credentials")

	// ErrInvalidToken indicates a malformed, tampered or expired bearer token.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthenticated, "invalid token")

	// ErrMissingCredentials indicates the Authorization header is absent or uses an unknown scheme.
	ErrMissingCredentials = errors.Wrap(errors.ErrUnauthenticated, "missing credentials")

	// ErrUnknownRole indicates a role that is not in the role table.
	ErrUnknownRole = errors.Wrap(errors.ErrInvalidInput, "unknown role")
)
