// Package repository implements record persistence for PostgreSQL, MySQL and SQLite.
// All resources share the records table; the resource column scopes every query.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/modelgate/internal/database"
	apperrors "github.com/allisson/modelgate/internal/errors"
	recordsDomain "github.com/allisson/modelgate/internal/records/domain"
)

// PostgreSQLRecordRepository implements Record persistence for PostgreSQL.
type PostgreSQLRecordRepository struct {
	db *sql.DB
}

// NewPostgreSQLRecordRepository creates a new PostgreSQL Record repository.
func NewPostgreSQLRecordRepository(db *sql.DB) *PostgreSQLRecordRepository {
	return &PostgreSQLRecordRepository{db: db}
}

// List returns every record of the resource ordered by creation time.
func (p *PostgreSQLRecordRepository) List(ctx context.Context, resource string) ([]*recordsDomain.Record, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, resource, data, created_at, updated_at
			  FROM records
			  WHERE resource = $1
			  ORDER BY created_at ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, resource)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list records")
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*recordsDomain.Record, 0)
	for rows.Next() {
		var record recordsDomain.Record
		var data []byte

		if err := rows.Scan(&record.ID, &record.Resource, &data, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan record")
		}
		if err := json.Unmarshal(data, &record.Fields); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal record data")
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate records")
	}

	return records, nil
}

// Get retrieves one record of the resource by ID.
func (p *PostgreSQLRecordRepository) Get(
	ctx context.Context,
	resource string,
	id uuid.UUID,
) (*recordsDomain.Record, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, resource, data, created_at, updated_at
			  FROM records
			  WHERE resource = $1 AND id = $2`

	var record recordsDomain.Record
	var data []byte

	err := querier.QueryRowContext(ctx, query, resource, id).Scan(
		&record.ID,
		&record.Resource,
		&data,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recordsDomain.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get record")
	}

	if err := json.Unmarshal(data, &record.Fields); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal record data")
	}

	return &record, nil
}

// Create inserts a new record.
func (p *PostgreSQLRecordRepository) Create(ctx context.Context, record *recordsDomain.Record) error {
	querier := database.GetTx(ctx, p.db)

	data, err := json.Marshal(record.Fields)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record data")
	}

	query := `INSERT INTO records (id, resource, data, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err = querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.Resource,
		string(data),
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create record")
	}
	return nil
}

// Update overwrites the data and updated_at columns of an existing record.
func (p *PostgreSQLRecordRepository) Update(ctx context.Context, record *recordsDomain.Record) error {
	querier := database.GetTx(ctx, p.db)

	data, err := json.Marshal(record.Fields)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record data")
	}

	query := `UPDATE records
			  SET data = $1, updated_at = $2
			  WHERE resource = $3 AND id = $4`

	result, err := querier.ExecContext(ctx, query, string(data), record.UpdatedAt, record.Resource, record.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update record")
	}

	return requireAffected(result)
}

// Delete removes a record and returns the number of rows removed.
func (p *PostgreSQLRecordRepository) Delete(ctx context.Context, resource string, id uuid.UUID) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM records WHERE resource = $1 AND id = $2`

	result, err := querier.ExecContext(ctx, query, resource, id)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete record")
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return deleted, nil
}

// requireAffected maps an update that matched nothing to ErrRecordNotFound.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if affected == 0 {
		return recordsDomain.ErrRecordNotFound
	}
	return nil
}
