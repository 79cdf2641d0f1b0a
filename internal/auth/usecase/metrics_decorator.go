package usecase

import (
	"context"
	"errors"
	"time"

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
	"github.com/allisson/modelgate/internal/metrics"
)

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Signup records metrics for signup operations.
func (u *userUseCaseWithMetrics) Signup(
	ctx context.Context,
	input *authDomain.CreateUserInput,
) (*authDomain.User, error) {
	start := time.Now()
	user, err := u.next.Signup(ctx, input)
	u.record(ctx, "signup", start, err)
	return user, err
}

// AuthenticateBasic records operation and authentication outcome metrics.
func (u *userUseCaseWithMetrics) AuthenticateBasic(
	ctx context.Context,
	username, password string,
) (*authDomain.User, error) {
	start := time.Now()
	user, err := u.next.AuthenticateBasic(ctx, username, password)
	u.record(ctx, "authenticate_basic", start, err)
	u.metrics.RecordAuthentication(ctx, "basic", authOutcome(err, authDomain.ErrInvalidCredentials, "invalid_credentials"))
	return user, err
}

// AuthenticateBearer records operation and authentication outcome metrics.
func (u *userUseCaseWithMetrics) AuthenticateBearer(ctx context.Context, token string) (*authDomain.User, error) {
	start := time.Now()
	user, err := u.next.AuthenticateBearer(ctx, token)
	u.record(ctx, "authenticate_bearer", start, err)
	u.metrics.RecordAuthentication(ctx, "bearer", authOutcome(err, authDomain.ErrInvalidToken, "invalid_token"))
	return user, err
}

// IssueToken records metrics for token issuance.
func (u *userUseCaseWithMetrics) IssueToken(ctx context.Context, user *authDomain.User) (string, error) {
	start := time.Now()
	token, err := u.next.IssueToken(ctx, user)
	u.record(ctx, "token_issue", start, err)
	return token, err
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "auth", operation, status)
	u.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// authOutcome labels an authentication result without leaking arbitrary error text into metrics.
func authOutcome(err, expected error, reason string) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, expected):
		return reason
	default:
		return "error"
	}
}
