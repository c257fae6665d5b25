package usecase

import (
	"context"
	"time"

	"github.com/allisson/accountvault/internal/account/domain"
	"github.com/allisson/accountvault/internal/metrics"
	otpDomain "github.com/allisson/accountvault/internal/otp/domain"
)

const metricsDomain = "account"

type accountUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewAccountUseCaseWithMetrics wraps a UseCase and records an operation count
// and duration for each call.
func NewAccountUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &accountUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *accountUseCaseWithMetrics) Upsert(ctx context.Context, input UpsertAccountInput) (*domain.Account, error) {
	start := time.Now()
	account, err := a.next.Upsert(ctx, input)
	metrics.Observe(ctx, a.metrics, metricsDomain, "upsert", start, err)
	return account, err
}

func (a *accountUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*domain.Account, error) {
	start := time.Now()
	accounts, err := a.next.List(ctx, offset, limit)
	metrics.Observe(ctx, a.metrics, metricsDomain, "list", start, err)
	return accounts, err
}

func (a *accountUseCaseWithMetrics) Delete(ctx context.Context, code string) error {
	start := time.Now()
	err := a.next.Delete(ctx, code)
	metrics.Observe(ctx, a.metrics, metricsDomain, "delete", start, err)
	return err
}

func (a *accountUseCaseWithMetrics) RevealSecrets(ctx context.Context, code string) (*domain.Secrets, error) {
	start := time.Now()
	secrets, err := a.next.RevealSecrets(ctx, code)
	metrics.Observe(ctx, a.metrics, metricsDomain, "reveal_secrets", start, err)
	return secrets, err
}

func (a *accountUseCaseWithMetrics) GetOTP(ctx context.Context, code string) (*otpDomain.Code, error) {
	start := time.Now()
	otp, err := a.next.GetOTP(ctx, code)
	metrics.Observe(ctx, a.metrics, metricsDomain, "get_otp", start, err)
	return otp, err
}

func (a *accountUseCaseWithMetrics) BulkOTP(ctx context.Context, codes []string) (map[string]*otpDomain.Code, error) {
	start := time.Now()
	results, err := a.next.BulkOTP(ctx, codes)
	metrics.Observe(ctx, a.metrics, metricsDomain, "bulk_otp", start, err)
	return results, err
}
