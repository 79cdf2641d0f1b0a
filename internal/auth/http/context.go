// Package http provides HTTP middleware and handlers for authentication and authorization.
package http

import (
	"context"

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
)

// identityKey is a context key type for storing the authenticated identity.
type identityKey struct{}

// schemeKey is a context key type for storing the scheme the caller authenticated with.
type schemeKey struct{}

// WithIdentity stores the authenticated identity in the context.
// This is called by the authentication middleware after the credentials were verified.
func WithIdentity(ctx context.Context, identity *authDomain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves the authenticated identity from the context.
// Returns (identity, true) if present, or (nil, false) if no identity was set.
func GetIdentity(ctx context.Context) (*authDomain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*authDomain.Identity)
	return identity, ok && identity != nil
}

// WithScheme records the authorization scheme ("basic" or "bearer") that produced the
// identity.
func WithScheme(ctx context.Context, scheme string) context.Context {
	return context.WithValue(ctx, schemeKey{}, scheme)
}

// GetScheme returns the scheme recorded by the authentication middleware, or "" when
// the request was not authenticated.
func GetScheme(ctx context.Context) string {
	scheme, _ := ctx.Value(schemeKey{}).(string)
	return scheme
}
