package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
	apperrors "github.com/allisson/modelgate/internal/errors"
)

// tokenService implements TokenService with HS256 JWTs.
type tokenService struct {
	key        []byte
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

// Issue signs a token with sub, iss and iat claims, plus exp when an expiration is configured.
func (t *tokenService) Issue(userID uuid.UUID) (string, error) {
	now := t.now()

	claims := jwt.RegisteredClaims{
		Subject:  userID.String(),
		Issuer:   t.issuer,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if t.expiration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.expiration))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// Verify parses and validates the token and returns the user identifier from sub.
func (t *tokenService) Verify(token string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(*jwt.Token) (any, error) { return t.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(authDomain.ErrInvalidToken, err.Error())
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(authDomain.ErrInvalidToken, "invalid subject")
	}
	return userID, nil
}

// NewTokenService creates a TokenService signing with key.
// A zero expiration issues tokens without an exp claim.
func NewTokenService(key []byte, issuer string, expiration time.Duration) TokenService {
	return newTokenService(key, issuer, expiration, time.Now)
}

func newTokenService(key []byte, issuer string, expiration time.Duration, now func() time.Time) *tokenService {
	return &tokenService{
		key:        key,
		issuer:     issuer,
		expiration: expiration,
		now:        now,
	}
}
