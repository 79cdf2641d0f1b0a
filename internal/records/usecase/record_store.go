package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/modelgate/internal/database"
	apperrors "github.com/allisson/modelgate/internal/errors"
	recordsDomain "github.com/allisson/modelgate/internal/records/domain"
	customValidation "github.com/allisson/modelgate/internal/validation"
)

// recordStore implements RecordStore for a single resource.
type recordStore struct {
	resource   *recordsDomain.Resource
	txManager  database.TxManager
	recordRepo RecordRepository
	now        func() time.Time
}

func (s *recordStore) Resource() *recordsDomain.Resource {
	return s.resource
}

// FindAll returns every record of the resource.
func (s *recordStore) FindAll(ctx context.Context) ([]*recordsDomain.Record, error) {
	return s.recordRepo.List(ctx, s.resource.Name)
}

// FindOne returns one record of the resource.
func (s *recordStore) FindOne(ctx context.Context, id uuid.UUID) (*recordsDomain.Record, error) {
	return s.recordRepo.Get(ctx, s.resource.Name, id)
}

// Create validates and stores a new record with a UUIDv7 identifier.
func (s *recordStore) Create(
	ctx context.Context,
	fields recordsDomain.Fields,
) (*recordsDomain.Record, error) {
	if err := s.resource.Validate(fields); err != nil {
		return nil, customValidation.WrapValidationError(err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate record id")
	}

	now := s.now().UTC()
	record := &recordsDomain.Record{
		ID:        id,
		Resource:  s.resource.Name,
		Fields:    fields,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Update merges the supplied fields into the stored record. The read and the write
// share one transaction.
func (s *recordStore) Update(
	ctx context.Context,
	id uuid.UUID,
	fields recordsDomain.Fields,
) (*recordsDomain.Record, error) {
	if err := s.resource.ValidatePatch(fields); err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidInput) {
			return nil, err
		}
		return nil, customValidation.WrapValidationError(err)
	}

	var updated *recordsDomain.Record
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		record, err := s.recordRepo.Get(ctx, s.resource.Name, id)
		if err != nil {
			return err
		}

		record.Fields = record.Merge(fields)
		record.UpdatedAt = s.now().UTC()

		if err := s.recordRepo.Update(ctx, record); err != nil {
			return err
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Destroy removes the record.
func (s *recordStore) Destroy(ctx context.Context, id uuid.UUID) (int64, error) {
	deleted, err := s.recordRepo.Delete(ctx, s.resource.Name, id)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, recordsDomain.ErrRecordNotFound
	}
	return deleted, nil
}

// storeResolver resolves resource names against the registry.
type storeResolver struct {
	stores map[string]RecordStore
}

// Resolve returns the store bound to name.
func (r *storeResolver) Resolve(name string) (RecordStore, error) {
	store, ok := r.stores[name]
	if !ok {
		return nil, recordsDomain.ErrUnknownResource
	}
	return store, nil
}

// NewStoreResolver builds one store per registered resource. The set of stores is
// fixed for the life of the resolver.
func NewStoreResolver(
	registry *recordsDomain.Registry,
	txManager database.TxManager,
	recordRepo RecordRepository,
) StoreResolver {
	return newStoreResolver(registry, txManager, recordRepo, time.Now)
}

func newStoreResolver(
	registry *recordsDomain.Registry,
	txManager database.TxManager,
	recordRepo RecordRepository,
	now func() time.Time,
) *storeResolver {
	names := registry.Names()
	stores := make(map[string]RecordStore, len(names))
	for _, name := range names {
		resource, _ := registry.Lookup(name)
		stores[name] = &recordStore{
			resource:   resource,
			txManager:  txManager,
			recordRepo: recordRepo,
			now:        now,
		}
	}
	return &storeResolver{stores: stores}
}
