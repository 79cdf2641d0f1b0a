// Package mocks provides testify mock implementations of the record use case interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	recordsDomain "github.com/allisson/modelgate/internal/records/domain"
	recordsUseCase "github.com/allisson/modelgate/internal/records/usecase"
)

// MockRecordRepository is a mock implementation of RecordRepository for testing.
type MockRecordRepository struct {
	mock.Mock
}

// List mocks the List method of RecordRepository.
func (m *MockRecordRepository) List(ctx context.Context, resource string) ([]*recordsDomain.Record, error) {
	args := m.Called(ctx, resource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recordsDomain.Record), args.Error(1)
}

// Get mocks the Get method of RecordRepository.
func (m *MockRecordRepository) Get(
	ctx context.Context,
	resource string,
	id uuid.UUID,
) (*recordsDomain.Record, error) {
	args := m.Called(ctx, resource, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recordsDomain.Record), args.Error(1)
}

// Create mocks the Create method of RecordRepository.
func (m *MockRecordRepository) Create(ctx context.Context, record *recordsDomain.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Update mocks the Update method of RecordRepository.
func (m *MockRecordRepository) Update(ctx context.Context, record *recordsDomain.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Delete mocks the Delete method of RecordRepository.
func (m *MockRecordRepository) Delete(ctx context.Context, resource string, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, resource, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockRecordStore is a mock implementation of RecordStore for testing.
type MockRecordStore struct {
	mock.Mock
}

// Resource mocks the Resource method of RecordStore.
func (m *MockRecordStore) Resource() *recordsDomain.Resource {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*recordsDomain.Resource)
}

// FindAll mocks the FindAll method of RecordStore.
func (m *MockRecordStore) FindAll(ctx context.Context) ([]*recordsDomain.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recordsDomain.Record), args.Error(1)
}

// FindOne mocks the FindOne method of RecordStore.
func (m *MockRecordStore) FindOne(ctx context.Context, id uuid.UUID) (*recordsDomain.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recordsDomain.Record), args.Error(1)
}

// Create mocks the Create method of RecordStore.
func (m *MockRecordStore) Create(
	ctx context.Context,
	fields recordsDomain.Fields,
) (*recordsDomain.Record, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recordsDomain.Record), args.Error(1)
}

// Update mocks the Update method of RecordStore.
func (m *MockRecordStore) Update(
	ctx context.Context,
	id uuid.UUID,
	fields recordsDomain.Fields,
) (*recordsDomain.Record, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recordsDomain.Record), args.Error(1)
}

// Destroy mocks the Destroy method of RecordStore.
func (m *MockRecordStore) Destroy(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockStoreResolver is a mock implementation of StoreResolver for testing.
type MockStoreResolver struct {
	mock.Mock
}

// Resolve mocks the Resolve method of StoreResolver.
func (m *MockStoreResolver) Resolve(name string) (recordsUseCase.RecordStore, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(recordsUseCase.RecordStore), args.Error(1)
}

// MockTxManager is a mock implementation of database.TxManager. Unless the expectation
// returns an error, the function runs against the unchanged context.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks the WithTx method of database.TxManager.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
