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

// MySQLRecordRepository implements Record persistence for MySQL and SQLite.
// Uses BINARY(16) (BLOB on SQLite) for UUID storage.
type MySQLRecordRepository struct {
	db *sql.DB
}

// NewMySQLRecordRepository creates a new MySQL Record repository.
func NewMySQLRecordRepository(db *sql.DB) *MySQLRecordRepository {
	return &MySQLRecordRepository{db: db}
}

// List returns every record of the resource ordered by creation time.
func (m *MySQLRecordRepository) List(ctx context.Context, resource string) ([]*recordsDomain.Record, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, resource, data, created_at, updated_at
			  FROM records
			  WHERE resource = ?
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
		record, err := scanMySQLRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate records")
	}

	return records, nil
}

// Get retrieves one record of the resource by ID.
func (m *MySQLRecordRepository) Get(
	ctx context.Context,
	resource string,
	id uuid.UUID,
) (*recordsDomain.Record, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal record id")
	}

	query := `SELECT id, resource, data, created_at, updated_at
			  FROM records
			  WHERE resource = ? AND id = ?`

	record, err := scanMySQLRecord(querier.QueryRowContext(ctx, query, resource, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recordsDomain.ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

// Create inserts a new record.
func (m *MySQLRecordRepository) Create(ctx context.Context, record *recordsDomain.Record) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record id")
	}

	data, err := json.Marshal(record.Fields)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record data")
	}

	query := `INSERT INTO records (id, resource, data, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
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
func (m *MySQLRecordRepository) Update(ctx context.Context, record *recordsDomain.Record) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record id")
	}

	data, err := json.Marshal(record.Fields)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record data")
	}

	query := `UPDATE records
			  SET data = ?, updated_at = ?
			  WHERE resource = ? AND id = ?`

	result, err := querier.ExecContext(ctx, query, string(data), record.UpdatedAt, record.Resource, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update record")
	}

	return requireAffected(result)
}

// Delete removes a record and returns the number of rows removed.
func (m *MySQLRecordRepository) Delete(ctx context.Context, resource string, id uuid.UUID) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal record id")
	}

	query := `DELETE FROM records WHERE resource = ? AND id = ?`

	result, err := querier.ExecContext(ctx, query, resource, idBytes)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete record")
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return deleted, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMySQLRecord scans one row. sql.ErrNoRows is returned unwrapped.
func scanMySQLRecord(row rowScanner) (*recordsDomain.Record, error) {
	var record recordsDomain.Record
	var idBytes []byte
	var data []byte

	err := row.Scan(&idBytes, &record.Resource, &data, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to scan record")
	}

	if err := record.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal record id")
	}
	if err := json.Unmarshal(data, &record.Fields); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal record data")
	}

	return &record, nil
}
