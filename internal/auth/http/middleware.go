package http

import (
	"encoding/base64"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
	authUseCase "github.com/allisson/modelgate/internal/auth/usecase"
	apperrors "github.com/allisson/modelgate/internal/errors"
	"github.com/allisson/modelgate/internal/httputil"
)

const (
	schemeBasic  = "basic"
	schemeBearer = "bearer"
)

// AuthenticationMiddleware verifies the credentials in the Authorization header and
// attaches the caller's identity to the request context.
//
// Two schemes are accepted, matched case-insensitively:
//
//	Authorization: Basic base64(username:password)
//	Authorization: Bearer <token>
//
// The scheme that succeeded is recorded with WithScheme. Bearer tokens are verified and
// the user they name is reloaded from the store, so capability changes apply to the
// next request.
//
// Every failure (missing header, unknown scheme, malformed value, bad credentials, bad
// token) answers 403 unauthenticated and aborts the chain. The middleware performs no
// authorization; see CapabilityMiddleware.
func AuthenticationMiddleware(userUseCase authUseCase.UserUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		scheme, credentials, ok := parseAuthorization(c.GetHeader("Authorization"))
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, authDomain.ErrMissingCredentials, logger)
			c.Abort()
			return
		}

		var (
			user *authDomain.User
			err  error
		)

		switch scheme {
		case schemeBasic:
			username, password, valid := decodeBasic(credentials)
			if !valid {
				logger.Debug("authentication failed: malformed basic credentials")
				httputil.HandleErrorGin(c, authDomain.ErrInvalidCredentials, logger)
				c.Abort()
				return
			}
			user, err = userUseCase.AuthenticateBasic(ctx, username, password)
		case schemeBearer:
			user, err = userUseCase.AuthenticateBearer(ctx, credentials)
		default:
			logger.Debug("authentication failed: unsupported scheme", slog.String("scheme", scheme))
			httputil.HandleErrorGin(c, authDomain.ErrMissingCredentials, logger)
			c.Abort()
			return
		}

		if err != nil {
			logger.Debug("authentication failed",
				slog.String("scheme", scheme),
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx = WithScheme(WithIdentity(ctx, authDomain.NewIdentity(user)), scheme)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("scheme", scheme),
			slog.String("user_id", user.ID.String()),
			slog.String("username", user.Username))

		c.Next()
	}
}

// CapabilityMiddleware allows the request through only when the authenticated identity
// holds the required capability.
//
// It must run after AuthenticationMiddleware. A request without an identity answers
// 401 invalid_login; an identity lacking the capability answers 403 access_denied.
//
//	router.DELETE("/:resource/:id",
//	    AuthenticationMiddleware(userUseCase, logger),
//	    CapabilityMiddleware(authDomain.DeleteCapability, logger),
//	    handler)
func CapabilityMiddleware(required authDomain.Capability, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c.Request.Context())
		if !ok {
			logger.Debug("authorization failed: no identity in context",
				slog.String("capability", string(required)))
			httputil.HandleErrorGin(c, apperrors.ErrInvalidLogin, logger)
			c.Abort()
			return
		}

		if !identity.Allows(required) {
			logger.Debug("authorization failed: missing capability",
				slog.String("user_id", identity.User.ID.String()),
				slog.String("capability", string(required)))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// parseAuthorization splits an Authorization header into its lower-cased scheme and
// the credentials that follow it.
func parseAuthorization(header string) (scheme, credentials string, ok bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", "", false
	}

	scheme, credentials, found := strings.Cut(header, " ")
	if !found {
		return "", "", false
	}

	credentials = strings.TrimSpace(credentials)
	if credentials == "" {
		return "", "", false
	}

	return strings.ToLower(scheme), credentials, true
}

// decodeBasic decodes base64(username:password). The password may contain colons.
func decodeBasic(credentials string) (username, password string, ok bool) {
	decoded, err := base64.StdEncoding.DecodeString(credentials)
	if err != nil {
		return "", "", false
	}

	username, password, ok = strings.Cut(string(decoded), ":")
	if !ok || username == "" {
		return "", "", false
	}
	return username, password, true
}
