// Package usecase defines business logic interfaces for user registration and authentication.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
)

// UserRepository defines persistence operations for users.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// Create stores a new user. Returns ErrUsernameTaken for duplicate usernames.
	Create(ctx context.Context, user *authDomain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, userID uuid.UUID) (*authDomain.User, error)

	// GetByUsername retrieves a user by username. Returns ErrUserNotFound if not found.
	GetByUsername(ctx context.Context, username string) (*authDomain.User, error)
}

// UserUseCase is the credential store used by the HTTP layer.
type UserUseCase interface {
	// Signup creates a user whose capabilities are copied from the role table.
	// An empty role means DefaultRole. Returns ErrUnknownRole for roles outside the
	// table and ErrUsernameTaken for duplicate usernames.
	Signup(ctx context.Context, input *authDomain.CreateUserInput) (*authDomain.User, error)

	// AuthenticateBasic looks the user up by username and verifies the password.
	// Unknown usernames and wrong passwords both return ErrInvalidCredentials.
	AuthenticateBasic(ctx context.Context, username, password string) (*authDomain.User, error)

	// AuthenticateBearer verifies the token and reloads the user it names, so the
	// returned capabilities are the stored ones rather than those at issue time.
	// Returns ErrInvalidToken for bad tokens and for tokens of deleted users.
	AuthenticateBearer(ctx context.Context, token string) (*authDomain.User, error)

	// IssueToken signs a bearer token for the user.
	IssueToken(ctx context.Context, user *authDomain.User) (string, error)
}
