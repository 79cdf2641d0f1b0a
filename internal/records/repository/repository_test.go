package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recordsDomain "github.com/allisson/modelgate/internal/records/domain"
	recordsUseCase "github.com/allisson/modelgate/internal/records/usecase"
)

func newTestRecord(resource string, createdAt time.Time, fields recordsDomain.Fields) *recordsDomain.Record {
	return &recordsDomain.Record{
		ID:        uuid.Must(uuid.NewV7()),
		Resource:  resource,
		Fields:    fields,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// exerciseRecordRepository runs the same behaviour checks against any driver.
func exerciseRecordRepository(t *testing.T, repo recordsUseCase.RecordRepository) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

	apple := newTestRecord("food", base, recordsDomain.Fields{"name": "apple", "calories": float64(52), "type": "fruit"})
	steak := newTestRecord("food", base.Add(time.Minute),
		recordsDomain.Fields{"name": "steak", "calories": float64(271), "type": "protein"})
	shirt := newTestRecord("clothes", base, recordsDomain.Fields{"name": "shirt", "color": "blue", "size": "M"})

	// Insert out of order to check the list ordering.
	require.NoError(t, repo.Create(ctx, steak))
	require.NoError(t, repo.Create(ctx, apple))
	require.NoError(t, repo.Create(ctx, shirt))

	t.Run("List scoped and ordered", func(t *testing.T) {
		food, err := repo.List(ctx, "food")
		require.NoError(t, err)
		require.Len(t, food, 2)
		assert.Equal(t, apple.ID, food[0].ID)
		assert.Equal(t, steak.ID, food[1].ID)
		assert.Equal(t, apple.Fields, food[0].Fields)

		clothes, err := repo.List(ctx, "clothes")
		require.NoError(t, err)
		require.Len(t, clothes, 1)
		assert.Equal(t, shirt.ID, clothes[0].ID)
	})

	t.Run("List empty resource", func(t *testing.T) {
		records, err := repo.List(ctx, "books")
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("Get", func(t *testing.T) {
		got, err := repo.Get(ctx, "clothes", shirt.ID)
		require.NoError(t, err)
		assert.Equal(t, shirt.ID, got.ID)
		assert.Equal(t, "clothes", got.Resource)
		assert.Equal(t, shirt.Fields, got.Fields)
		assert.WithinDuration(t, shirt.CreatedAt, got.CreatedAt, time.Second)
	})

	t.Run("Get wrong resource", func(t *testing.T) {
		_, err := repo.Get(ctx, "food", shirt.ID)
		assert.ErrorIs(t, err, recordsDomain.ErrRecordNotFound)
	})

	t.Run("Update", func(t *testing.T) {
		shirt.Fields = shirt.Merge(recordsDomain.Fields{"color": "red"})
		shirt.UpdatedAt = base.Add(time.Hour)
		require.NoError(t, repo.Update(ctx, shirt))

		got, err := repo.Get(ctx, "clothes", shirt.ID)
		require.NoError(t, err)
		assert.Equal(t, "red", got.Fields["color"])
		assert.WithinDuration(t, base.Add(time.Hour), got.UpdatedAt, time.Second)
	})

	t.Run("Update missing", func(t *testing.T) {
		ghost := newTestRecord("food", base, recordsDomain.Fields{"name": "ghost"})
		assert.ErrorIs(t, repo.Update(ctx, ghost), recordsDomain.ErrRecordNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, "food", apple.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		deleted, err = repo.Delete(ctx, "food", apple.ID)
		require.NoError(t, err)
		assert.Zero(t, deleted)

		_, err = repo.Get(ctx, "food", apple.ID)
		assert.ErrorIs(t, err, recordsDomain.ErrRecordNotFound)
	})
}
