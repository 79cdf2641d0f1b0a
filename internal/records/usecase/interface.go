// Package usecase defines the record store contract the CRUD dispatcher works against
// and the resolver that binds a resource name to its store.
package usecase

import (
	"context"

	"github.com/google/uuid"

	recordsDomain "github.com/allisson/modelgate/internal/records/domain"
)

// RecordRepository defines persistence operations for records. Every call is scoped
// to one resource name.
type RecordRepository interface {
	// List returns every record of the resource ordered by creation time.
	List(ctx context.Context, resource string) ([]*recordsDomain.Record, error)

	// Get returns one record. Returns ErrRecordNotFound if absent.
	Get(ctx context.Context, resource string, id uuid.UUID) (*recordsDomain.Record, error)

	// Create inserts a record.
	Create(ctx context.Context, record *recordsDomain.Record) error

	// Update overwrites the fields and updated_at of an existing record.
	// Returns ErrRecordNotFound if absent.
	Update(ctx context.Context, record *recordsDomain.Record) error

	// Delete removes a record and returns the number of rows removed.
	Delete(ctx context.Context, resource string, id uuid.UUID) (int64, error)
}

// RecordStore is the uniform CRUD surface of one resource.
type RecordStore interface {
	// Resource returns the schema the store validates against.
	Resource() *recordsDomain.Resource

	// FindAll returns every record ordered by creation time.
	FindAll(ctx context.Context) ([]*recordsDomain.Record, error)

	// FindOne returns the record with the given ID or ErrRecordNotFound.
	FindOne(ctx context.Context, id uuid.UUID) (*recordsDomain.Record, error)

	// Create validates the full field set and stores a new record.
	Create(ctx context.Context, fields recordsDomain.Fields) (*recordsDomain.Record, error)

	// Update validates the supplied fields, merges them into the stored ones and
	// persists the result.
	Update(ctx context.Context, id uuid.UUID, fields recordsDomain.Fields) (*recordsDomain.Record, error)

	// Destroy removes the record and returns how many were removed.
	// Returns ErrRecordNotFound when nothing matched.
	Destroy(ctx context.Context, id uuid.UUID) (int64, error)
}

// StoreResolver binds resource names to record stores.
type StoreResolver interface {
	// Resolve returns the store for a registered resource or ErrUnknownResource.
	Resolve(name string) (RecordStore, error)
}
