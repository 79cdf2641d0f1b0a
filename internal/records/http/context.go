// Package http provides the resource resolver middleware and the generic CRUD
// handlers that serve every registered resource.
package http

import (
	"context"

	recordsUseCase "github.com/allisson/modelgate/internal/records/usecase"
)

// storeKey is a context key type for storing the resolved record store.
type storeKey struct{}

// WithStore stores the record store bound to the request's resource in the context.
func WithStore(ctx context.Context, store recordsUseCase.RecordStore) context.Context {
	return context.WithValue(ctx, storeKey{}, store)
}

// GetStore retrieves the record store from the context.
func GetStore(ctx context.Context) (recordsUseCase.RecordStore, bool) {
	store, ok := ctx.Value(storeKey{}).(recordsUseCase.RecordStore)
	return store, ok && store != nil
}
