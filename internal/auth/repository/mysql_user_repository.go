package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
	"github.com/allisson/modelgate/internal/database"
	apperrors "github.com/allisson/modelgate/internal/errors"
)

// MySQLUserRepository implements User persistence for MySQL and SQLite.
// Uses BINARY(16) (BLOB on SQLite) for UUID storage.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQL User repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// Create inserts a new User. Returns domain.ErrUsernameTaken on a duplicate username.
func (m *MySQLUserRepository) Create(ctx context.Context, user *authDomain.User) error {
	querier := database.GetTx(ctx, m.db)

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	capabilitiesJSON, err := json.Marshal(user.Capabilities)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user capabilities")
	}

	query := `INSERT INTO users (id, username, password_hash, role, capabilities, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLUserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*authDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT id, username, password_hash, role, capabilities, created_at, updated_at
			  FROM users WHERE id = ?`

	return m.scan(querier.QueryRowContext(ctx, query, id), "failed to get user by id")
}

// GetByUsername retrieves a User by username.
func (m *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*authDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, username, password_hash, role, capabilities, created_at, updated_at
			  FROM users WHERE username = ?`

	return m.scan(querier.QueryRowContext(ctx, query, username), "failed to get user by username")
}

func (m *MySQLUserRepository) scan(row *sql.Row, failure string) (*authDomain.User, error) {
	var user authDomain.User
	var idBytes []byte
	var role string
	var capabilitiesJSON []byte

	err := row.Scan(
		&idBytes,
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

	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}

	user.Role = authDomain.Role(role)
	if err := json.Unmarshal(capabilitiesJSON, &user.Capabilities); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user capabilities")
	}

	return &user, nil
}
