package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/modelgate/internal/metrics"
	recordsDomain "github.com/allisson/modelgate/internal/records/domain"
)

// storeResolverWithMetrics decorates every resolved RecordStore with metrics.
type storeResolverWithMetrics struct {
	next    StoreResolver
	metrics metrics.BusinessMetrics
}

// NewStoreResolverWithMetrics wraps a StoreResolver so the stores it returns record
// operation counts and durations.
func NewStoreResolverWithMetrics(resolver StoreResolver, m metrics.BusinessMetrics) StoreResolver {
	return &storeResolverWithMetrics{
		next:    resolver,
		metrics: m,
	}
}

func (r *storeResolverWithMetrics) Resolve(name string) (RecordStore, error) {
	store, err := r.next.Resolve(name)
	if err != nil {
		return nil, err
	}
	return &recordStoreWithMetrics{next: store, metrics: r.metrics}, nil
}

// recordStoreWithMetrics decorates RecordStore with metrics instrumentation.
type recordStoreWithMetrics struct {
	next    RecordStore
	metrics metrics.BusinessMetrics
}

func (s *recordStoreWithMetrics) Resource() *recordsDomain.Resource {
	return s.next.Resource()
}

// FindAll records metrics for list operations.
func (s *recordStoreWithMetrics) FindAll(ctx context.Context) ([]*recordsDomain.Record, error) {
	start := time.Now()
	records, err := s.next.FindAll(ctx)
	s.record(ctx, "record_list", start, err)
	return records, err
}

// FindOne records metrics for get operations.
func (s *recordStoreWithMetrics) FindOne(ctx context.Context, id uuid.UUID) (*recordsDomain.Record, error) {
	start := time.Now()
	record, err := s.next.FindOne(ctx, id)
	s.record(ctx, "record_get", start, err)
	return record, err
}

// Create records metrics for create operations.
func (s *recordStoreWithMetrics) Create(
	ctx context.Context,
	fields recordsDomain.Fields,
) (*recordsDomain.Record, error) {
	start := time.Now()
	record, err := s.next.Create(ctx, fields)
	s.record(ctx, "record_create", start, err)
	return record, err
}

// Update records metrics for update operations.
func (s *recordStoreWithMetrics) Update(
	ctx context.Context,
	id uuid.UUID,
	fields recordsDomain.Fields,
) (*recordsDomain.Record, error) {
	start := time.Now()
	record, err := s.next.Update(ctx, id, fields)
	s.record(ctx, "record_update", start, err)
	return record, err
}

// Destroy records metrics for delete operations.
func (s *recordStoreWithMetrics) Destroy(ctx context.Context, id uuid.UUID) (int64, error) {
	start := time.Now()
	deleted, err := s.next.Destroy(ctx, id)
	s.record(ctx, "record_delete", start, err)
	return deleted, err
}

func (s *recordStoreWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "records", operation, status)
	s.metrics.RecordDuration(ctx, "records", operation, time.Since(start), status)
}
