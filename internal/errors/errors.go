// Package errors holds the sentinel errors shared by every feature package.
// Feature errors wrap one of these, and httputil maps the sentinel to a status.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness clash, such as a taken username.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated indicates missing or invalid credentials (basic or bearer).
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidLogin indicates an authorization check ran on a request that never
	// carried an authenticated identity.
	ErrInvalidLogin = errors.New("invalid login")

	// ErrForbidden indicates the authenticated user lacks the required capability.
	ErrForbidden = errors.New("access denied")

	// ErrInvalidModel indicates the requested resource name is not registered.
	ErrInvalidModel = errors.New("invalid model")
)

// New is errors.New.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message, keeping err in the chain. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is is errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
