package domain

import "slices"

// Identity is the authenticated caller of a single request.
//
// It is built by the authentication middleware from the stored user and lives only
// for the duration of that request.
type Identity struct {
	User         *User
	Capabilities []Capability
}

// NewIdentity builds the identity for a freshly loaded user.
func NewIdentity(user *User) *Identity {
	return &Identity{
		User:         user,
		Capabilities: slices.Clone(user.Capabilities),
	}
}

// Allows reports whether the identity holds the required capability.
func (i *Identity) Allows(required Capability) bool {
	if i == nil || required == "" {
		return false
	}
	return slices.Contains(i.Capabilities, required)
}
