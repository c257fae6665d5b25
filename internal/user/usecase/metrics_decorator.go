package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/accountvault/internal/auth/domain"
	"github.com/allisson/accountvault/internal/metrics"
	"github.com/allisson/accountvault/internal/user/domain"
)

const metricsDomain = "user"

type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UseCase and records an operation count and
// duration for each call.
func NewUserUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Register(ctx, input)
	metrics.Observe(ctx, u.metrics, metricsDomain, "register", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) Login(ctx context.Context, input LoginInput) (*authDomain.SessionToken, error) {
	start := time.Now()
	token, err := u.next.Login(ctx, input)
	metrics.Observe(ctx, u.metrics, metricsDomain, "login", start, err)
	return token, err
}

func (u *userUseCaseWithMetrics) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Authenticate(ctx, token)
	metrics.Observe(ctx, u.metrics, metricsDomain, "authenticate", start, err)
	return user, err
}
