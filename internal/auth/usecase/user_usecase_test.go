package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
	authService "github.com/allisson/modelgate/internal/auth/service"
	"github.com/allisson/modelgate/internal/auth/usecase/mocks"
)

// mockPasswordService is a mock implementation of PasswordService for testing.
type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Compare(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

// mockTokenService is a mock implementation of TokenService for testing.
type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Verify(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type fixture struct {
	repo      *mocks.MockUserRepository
	passwords *mockPasswordService
	tokens    *mockTokenService
	useCase   UserUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	roles, err := authService.NewRoleService()
	require.NoError(t, err)

	f := &fixture{
		repo:      &mocks.MockUserRepository{},
		passwords: &mockPasswordService{},
		tokens:    &mockTokenService{},
	}
	f.useCase = NewUserUseCase(f.repo, f.passwords, f.tokens, roles)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.repo.AssertExpectations(t)
	f.passwords.AssertExpectations(t)
	f.tokens.AssertExpectations(t)
}

func TestUserUseCase_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RoleCapabilitiesAreDenormalized", func(t *testing.T) {
		f := newFixture(t)

		f.passwords.On("Hash", "password").Return("hashed", nil).Once()
		f.repo.On("Create", ctx, mock.MatchedBy(func(u *authDomain.User) bool {
			return u.Username == "alice" &&
				u.PasswordHash == "hashed" &&
				u.Role == authDomain.RoleEditor &&
				u.ID != uuid.Nil &&
				!u.CreatedAt.IsZero()
		})).Return(nil).Once()

		user, err := f.useCase.Signup(ctx, &authDomain.CreateUserInput{
			Username: "alice",
			Password: "password",
			Role:     authDomain.RoleEditor,
		})

		require.NoError(t, err)
		assert.Equal(t, []authDomain.Capability{
			authDomain.CreateCapability,
			authDomain.ReadCapability,
			authDomain.UpdateCapability,
		}, user.Capabilities)
		f.assertExpectations(t)
	})

	t.Run("Success_DefaultRole", func(t *testing.T) {
		f := newFixture(t)

		f.passwords.On("Hash", "password").Return("hashed", nil).Once()
		f.repo.On("Create", ctx, mock.Anything).Return(nil).Once()

		user, err := f.useCase.Signup(ctx, &authDomain.CreateUserInput{Username: "bob", Password: "password"})

		require.NoError(t, err)
		assert.Equal(t, authDomain.RoleUser, user.Role)
		assert.Equal(t, []authDomain.Capability{authDomain.ReadCapability}, user.Capabilities)
		f.assertExpectations(t)
	})

	t.Run("Error_UnknownRole", func(t *testing.T) {
		f := newFixture(t)

		user, err := f.useCase.Signup(ctx, &authDomain.CreateUserInput{
			Username: "mallory",
			Password: "password",
			Role:     "root",
		})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, authDomain.ErrUnknownRole)
		f.assertExpectations(t)
	})

	t.Run("Error_UsernameTaken", func(t *testing.T) {
		f := newFixture(t)

		f.passwords.On("Hash", "password").Return("hashed", nil).Once()
		f.repo.On("Create", ctx, mock.Anything).Return(authDomain.ErrUsernameTaken).Once()

		user, err := f.useCase.Signup(ctx, &authDomain.CreateUserInput{Username: "alice", Password: "password"})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, authDomain.ErrUsernameTaken)
		f.assertExpectations(t)
	})

	t.Run("Error_HashFailure", func(t *testing.T) {
		f := newFixture(t)

		f.passwords.On("Hash", "password").Return("", errors.New("out of memory")).Once()

		user, err := f.useCase.Signup(ctx, &authDomain.CreateUserInput{Username: "alice", Password: "password"})

		assert.Nil(t, user)
		assert.EqualError(t, err, "out of memory")
		f.assertExpectations(t)
	})
}

func TestUserUseCase_AuthenticateBasic(t *testing.T) {
	ctx := context.Background()
	stored := &authDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     "alice",
		PasswordHash: "hashed",
		Role:         authDomain.RoleUser,
		Capabilities: []authDomain.Capability{authDomain.ReadCapability},
	}

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetByUsername", ctx, "alice").Return(stored, nil).Once()
		f.passwords.On("Compare", "password", "hashed").Return(true).Once()

		user, err := f.useCase.AuthenticateBasic(ctx, "alice", "password")

		require.NoError(t, err)
		assert.Equal(t, stored, user)
		f.assertExpectations(t)
	})

	t.Run("Error_UnknownUser", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetByUsername", ctx, "ghost").Return(nil, authDomain.ErrUserNotFound).Once()

		user, err := f.useCase.AuthenticateBasic(ctx, "ghost", "password")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		f.assertExpectations(t)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetByUsername", ctx, "alice").Return(stored, nil).Once()
		f.passwords.On("Compare", "wrong", "hashed").Return(false).Once()

		user, err := f.useCase.AuthenticateBasic(ctx, "alice", "wrong")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		f.assertExpectations(t)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		f := newFixture(t)
		dbErr := errors.New("connection refused")
		f.repo.On("GetByUsername", ctx, "alice").Return(nil, dbErr).Once()

		_, err := f.useCase.AuthenticateBasic(ctx, "alice", "password")

		assert.Equal(t, dbErr, err)
		f.assertExpectations(t)
	})
}

func TestUserUseCase_AuthenticateBearer(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success_ReloadsCurrentCapabilities", func(t *testing.T) {
		f := newFixture(t)
		current := &authDomain.User{
			ID:           userID,
			Username:     "alice",
			Capabilities: []authDomain.Capability{authDomain.ReadCapability},
		}
		f.tokens.On("Verify", "token").Return(userID, nil).Once()
		f.repo.On("GetByID", ctx, userID).Return(current, nil).Once()

		user, err := f.useCase.AuthenticateBearer(ctx, "token")

		require.NoError(t, err)
		assert.Equal(t, current, user)
		f.assertExpectations(t)
	})

	t.Run("Error_InvalidToken", func(t *testing.T) {
		f := newFixture(t)
		f.tokens.On("Verify", "foobar").Return(uuid.Nil, authDomain.ErrInvalidToken).Once()

		user, err := f.useCase.AuthenticateBearer(ctx, "foobar")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
		f.assertExpectations(t)
	})

	t.Run("Error_UserDeleted", func(t *testing.T) {
		f := newFixture(t)
		f.tokens.On("Verify", "token").Return(userID, nil).Once()
		f.repo.On("GetByID", ctx, userID).Return(nil, authDomain.ErrUserNotFound).Once()

		user, err := f.useCase.AuthenticateBearer(ctx, "token")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
		f.assertExpectations(t)
	})
}

func TestUserUseCase_IssueToken(t *testing.T) {
	f := newFixture(t)
	user := &authDomain.User{ID: uuid.Must(uuid.NewV7())}
	f.tokens.On("Issue", user.ID).Return("signed", nil).Once()

	token, err := f.useCase.IssueToken(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, "signed", token)
	f.assertExpectations(t)
}
