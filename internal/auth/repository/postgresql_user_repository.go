// Package repository implements data persistence for users.
//
// Provides PostgreSQL and MySQL implementations with transaction support via database.GetTx().
// PostgreSQL uses native UUID and JSONB types. MySQL uses BINARY(16) and JSON, and the same
// implementation serves SQLite, which shares the placeholder syntax and stores UUIDs as 16-byte blobs.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
	"github.com/allisson/modelgate/internal/database"
	apperrors "github.com/allisson/modelgate/internal/errors"
)

// PostgreSQLUserRepository implements User persistence for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQL User repository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// Create inserts a new User. Returns domain.ErrUsernameTaken on a duplicate username.
func (p *PostgreSQLUserRepository) Create(ctx context.Context, user *authDomain.User) error {
	querier := database.GetTx(ctx, p.db)

	capabilitiesJSON, err := json.Marshal(user.Capabilities)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user capabilities")
	}

	query := `INSERT INTO users (id, username, password_hash, role, capabilities, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.PasswordHash,
		string(user.Role),
		string(capabilitiesJSON),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return authDomain.ErrUsernameTaken
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a User by ID.
func (p *PostgreSQLUserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*authDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, username, password_hash, role, capabilities, created_at, updated_at
			  FROM users WHERE id = $1`

	return p.scan(querier.QueryRowContext(ctx, query, userID), "failed to get user by id")
}

// GetByUsername retrieves a User by username.
func (p *PostgreSQLUserRepository) GetByUsername(ctx context.Context, username string) (*authDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, username, password_hash, role, capabilities, created_at, updated_at
			  FROM users WHERE username = $1`

	return p.scan(querier.QueryRowContext(ctx, query, username), "failed to get user by username")
}

func (p *PostgreSQLUserRepository) scan(row *sql.Row, failure string) (*authDomain.User, error) {
	var user authDomain.User
	var role string
	var capabilitiesJSON []byte

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&role,
		&capabilitiesJSON,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, failure)
	}

	user.Role = authDomain.Role(role)
	if err := json.Unmarshal(capabilitiesJSON, &user.Capabilities); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user capabilities")
	}

	return &user, nil
}

// isUniqueViolation checks for unique constraint violations across the supported drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" (23505)
	// MySQL: "Error 1062: Duplicate entry"
	// SQLite: "UNIQUE constraint failed"
	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "23505") ||
		strings.Contains(errMsg, "duplicate entry") ||
		strings.Contains(errMsg, "1062") ||
		strings.Contains(errMsg, "unique constraint failed")
}
