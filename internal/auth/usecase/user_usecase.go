// Package usecase implements business logic orchestration for user registration and authentication.
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
	authService "github.com/allisson/modelgate/internal/auth/service"
)

// userUseCase implements UserUseCase.
type userUseCase struct {
	userRepo        UserRepository
	passwordService authService.PasswordService
	tokenService    authService.TokenService
	roleService     authService.RoleService
}

// Signup hashes the password, resolves the role's capabilities and persists the user.
func (u *userUseCase) Signup(
	ctx context.Context,
	input *authDomain.CreateUserInput,
) (*authDomain.User, error) {
	role := input.Role
	if role == "" {
		role = authDomain.DefaultRole
	}

	capabilities, err := u.roleService.CapabilitiesOf(role)
	if err != nil {
		return nil, err
	}

	passwordHash, err := u.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &authDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     input.Username,
		PasswordHash: passwordHash,
		Role:         role,
		Capabilities: capabilities,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// AuthenticateBasic verifies a username and password pair.
func (u *userUseCase) AuthenticateBasic(
	ctx context.Context,
	username, password string,
) (*authDomain.User, error) {
	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// Same error for unknown users and wrong passwords
		if errors.Is(err, authDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.passwordService.Compare(password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	return user, nil
}

// AuthenticateBearer verifies a bearer token and reloads its user.
func (u *userUseCase) AuthenticateBearer(ctx context.Context, token string) (*authDomain.User, error) {
	userID, err := u.tokenService.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}

// IssueToken signs a bearer token for the user.
func (u *userUseCase) IssueToken(_ context.Context, user *authDomain.User) (string, error) {
	return u.tokenService.Issue(user.ID)
}

// NewUserUseCase creates a new UserUseCase with the provided dependencies.
func NewUserUseCase(
	userRepo UserRepository,
	passwordService authService.PasswordService,
	tokenService authService.TokenService,
	roleService authService.RoleService,
) UserUseCase {
	return &userUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		roleService:     roleService,
	}
}
