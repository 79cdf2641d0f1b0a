package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
	"github.com/allisson/modelgate/internal/auth/http/dto"
	"github.com/allisson/modelgate/internal/auth/usecase/mocks"
)

// setupTestHandler creates a handler and router with mocked dependencies.
func setupTestHandler(t *testing.T) (*gin.Engine, *mocks.MockUserUseCase) {
	t.Helper()

	userUseCase := &mocks.MockUserUseCase{}
	logger := createTestLogger()
	handler := NewAuthHandler(userUseCase, logger)

	router := gin.New()
	router.POST("/signup", handler.SignupHandler)
	router.POST("/signin", AuthenticationMiddleware(userUseCase, logger), handler.SigninHandler)

	return router, userUseCase
}

func postJSON(router *gin.Engine, path string, body any, header string) *httptest.ResponseRecorder {
	var payload []byte
	switch v := body.(type) {
	case string:
		payload = []byte(v)
	default:
		payload, _ = json.Marshal(v)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("Success_DefaultRole", func(t *testing.T) {
		router, userUseCase := setupTestHandler(t)
		user := newTestUser(authDomain.RoleUser, authDomain.ReadCapability)

		userUseCase.On("Signup", mock.Anything, &authDomain.CreateUserInput{
			Username: "alice",
			Password: "correct-horse",
		}).Return(user, nil).Once()
		userUseCase.On("IssueToken", mock.Anything, user).Return("tok", nil).Once()

		w := postJSON(router, "/signup", map[string]string{
			"username": "alice",
			"password": "correct-horse",
		}, "")

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "tok", response.Token)
		assert.Equal(t, user.ID.String(), response.User.ID)
		assert.Equal(t, "user", response.User.Role)
		assert.Equal(t, []string{"read"}, response.User.Capabilities)
		assert.NotContains(t, w.Body.String(), "hash")
		userUseCase.AssertExpectations(t)
	})

	t.Run("Success_ExplicitRole", func(t *testing.T) {
		router, userUseCase := setupTestHandler(t)
		user := newTestUser(authDomain.RoleEditor,
			authDomain.CreateCapability, authDomain.ReadCapability, authDomain.UpdateCapability)

		userUseCase.On("Signup", mock.Anything, mock.MatchedBy(func(in *authDomain.CreateUserInput) bool {
			return in.Role == authDomain.RoleEditor
		})).Return(user, nil).Once()
		userUseCase.On("IssueToken", mock.Anything, user).Return("tok", nil).Once()

		w := postJSON(router, "/signup", map[string]string{
			"username": "alice",
			"password": "correct-horse",
			"role":     "editor",
		}, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		userUseCase.AssertExpectations(t)
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		router, userUseCase := setupTestHandler(t)

		w := postJSON(router, "/signup", `{"username":`, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", decodeError(t, w).Error)
		userUseCase.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
	})

	t.Run("Error_Validation", func(t *testing.T) {
		cases := map[string]map[string]string{
			"missing username": {"password": "correct-horse"},
			"short password":   {"username": "alice", "password": "short"},
			"unknown role":     {"username": "alice", "password": "correct-horse", "role": "root"},
			"bad username":     {"username": "al ice", "password": "correct-horse"},
		}

		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				router, userUseCase := setupTestHandler(t)

				w := postJSON(router, "/signup", body, "")

				assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
				assert.Equal(t, "validation_error", decodeError(t, w).Error)
				userUseCase.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("Error_UsernameTaken", func(t *testing.T) {
		router, userUseCase := setupTestHandler(t)
		userUseCase.On("Signup", mock.Anything, mock.Anything).Return(nil, authDomain.ErrUsernameTaken).Once()

		w := postJSON(router, "/signup", map[string]string{
			"username": "alice",
			"password": "correct-horse",
		}, "")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "conflict", decodeError(t, w).Error)
	})

	t.Run("Error_IssueToken", func(t *testing.T) {
		router, userUseCase := setupTestHandler(t)
		user := newTestUser(authDomain.RoleUser, authDomain.ReadCapability)
		userUseCase.On("Signup", mock.Anything, mock.Anything).Return(user, nil).Once()
		userUseCase.On("IssueToken", mock.Anything, user).Return("", errors.New("sign failed")).Once()

		w := postJSON(router, "/signup", map[string]string{
			"username": "alice",
			"password": "correct-horse",
		}, "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAuthHandler_Signin(t *testing.T) {
	t.Run("Success_Basic", func(t *testing.T) {
		router, userUseCase := setupTestHandler(t)
		user := newTestUser(authDomain.RoleUser, authDomain.ReadCapability)

		userUseCase.On("AuthenticateBasic", mock.Anything, "alice", "correct-horse").Return(user, nil).Once()
		userUseCase.On("IssueToken", mock.Anything, user).Return("minted", nil).Once()

		w := postJSON(router, "/signin", "", basicHeader("alice", "correct-horse"))

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "minted", response.Token)
		assert.Equal(t, "alice", response.User.Username)
		userUseCase.AssertExpectations(t)
	})

	t.Run("Error_BearerCannotRenewToken", func(t *testing.T) {
		router, userUseCase := setupTestHandler(t)
		user := newTestUser(authDomain.RoleUser, authDomain.ReadCapability)

		userUseCase.On("AuthenticateBearer", mock.Anything, "old").Return(user, nil).Once()

		w := postJSON(router, "/signin", "", "Bearer old")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "unauthenticated", decodeError(t, w).Error)
		assert.NotContains(t, w.Body.String(), "token")
		userUseCase.AssertNotCalled(t, "IssueToken", mock.Anything, mock.Anything)
	})

	t.Run("Error_IssueToken", func(t *testing.T) {
		router, userUseCase := setupTestHandler(t)
		user := newTestUser(authDomain.RoleUser, authDomain.ReadCapability)

		userUseCase.On("AuthenticateBasic", mock.Anything, "alice", "correct-horse").Return(user, nil).Once()
		userUseCase.On("IssueToken", mock.Anything, user).Return("", errors.New("sign failed")).Once()

		w := postJSON(router, "/signin", "", basicHeader("alice", "correct-horse"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal_error", decodeError(t, w).Error)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		router, userUseCase := setupTestHandler(t)
		userUseCase.On("AuthenticateBasic", mock.Anything, "alice", "nope").
			Return(nil, authDomain.ErrInvalidCredentials).Once()

		w := postJSON(router, "/signin", "", basicHeader("alice", "nope"))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "unauthenticated", decodeError(t, w).Error)
	})

	t.Run("Error_NoIdentity", func(t *testing.T) {
		handler := NewAuthHandler(&mocks.MockUserUseCase{}, createTestLogger())
		router := gin.New()
		router.POST("/signin", handler.SigninHandler)

		w := postJSON(router, "/signin", "", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid_login", decodeError(t, w).Error)
	})
}
