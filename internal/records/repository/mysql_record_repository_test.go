package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/modelgate/internal/database"
	recordsDomain "github.com/allisson/modelgate/internal/records/domain"
	"github.com/allisson/modelgate/internal/testutil"
)

func TestNewMySQLRecordRepository(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)

	repo := NewMySQLRecordRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &MySQLRecordRepository{}, repo)
}

func TestMySQLRecordRepository_SQLite(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	exerciseRecordRepository(t, NewMySQLRecordRepository(db))
}

func TestMySQLRecordRepository_SQLite_WithinTransaction(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := NewMySQLRecordRepository(db)
	txManager := database.NewTxManager(db)
	ctx := context.Background()

	record := newTestRecord("food", time.Now().UTC(), recordsDomain.Fields{"name": "kiwi"})

	err := txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := repo.Create(ctx, record); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.EqualError(t, err, "abort")

	_, err = repo.Get(ctx, "food", record.ID)
	assert.ErrorIs(t, err, recordsDomain.ErrRecordNotFound)
}

func TestMySQLRecordRepository_Create_BinaryID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	record := newTestRecord("clothes", time.Now().UTC(), recordsDomain.Fields{"name": "hat"})
	id, err := record.ID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO records`)).
		WithArgs(id, "clothes", `{"name":"hat"}`, record.CreatedAt, record.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewMySQLRecordRepository(db).Create(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLRecordRepository_List_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, resource, data, created_at, updated_at`)).
		WithArgs("food").
		WillReturnError(errors.New("server gone away"))

	_, err = NewMySQLRecordRepository(db).List(context.Background(), "food")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list records")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLRecordRepository_Integration(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	exerciseRecordRepository(t, NewMySQLRecordRepository(db))
}
