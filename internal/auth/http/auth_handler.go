package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
	"github.com/allisson/modelgate/internal/auth/http/dto"
	authUseCase "github.com/allisson/modelgate/internal/auth/usecase"
	apperrors "github.com/allisson/modelgate/internal/errors"
	"github.com/allisson/modelgate/internal/httputil"
	customValidation "github.com/allisson/modelgate/internal/validation"
)

// AuthHandler handles user registration and sign-in.
type AuthHandler struct {
	userUseCase authUseCase.UserUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(userUseCase authUseCase.UserUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// SignupHandler registers a user and returns it with a freshly issued token.
// POST /signup - No authentication required.
// Returns 201 Created with {user, token}.
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	var req dto.SignupRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ctx := c.Request.Context()

	user, err := h.userUseCase.Signup(ctx, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	token, err := h.userUseCase.IssueToken(ctx, user)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		User:  dto.MapUserToResponse(user),
		Token: token,
	})
}

// SigninHandler mints a token for the identity established by Basic authentication.
// POST /signin - Requires Basic credentials (AuthenticationMiddleware).
// Returns 200 OK with {user, token}. A request authenticated with a bearer token
// answers 403 unauthenticated, so a token can never be renewed without the password.
func (h *AuthHandler) SigninHandler(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := GetIdentity(ctx)
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrInvalidLogin, h.logger)
		return
	}
	if GetScheme(ctx) != schemeBasic {
		httputil.HandleErrorGin(c, authDomain.ErrMissingCredentials, h.logger)
		return
	}

	token, err := h.userUseCase.IssueToken(ctx, identity.User)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		User:  dto.MapUserToResponse(identity.User),
		Token: token,
	})
}
