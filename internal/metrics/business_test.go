package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine checks the scrape output for a sample of name whose labels
// match the partial pattern. The exporter adds otel scope labels of its own.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("vault_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "vault_test")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "account", "upsert", StatusSuccess)
	bm.RecordOperation(ctx, "account", "upsert", StatusSuccess)
	bm.RecordOperation(ctx, "user", "login", StatusError)
	bm.RecordDuration(ctx, "account", "upsert", 15*time.Millisecond, StatusSuccess)

	output := scrape(t, provider)

	assertMetricLine(t, output, `vault_test_operations_total`,
		`domain="account".*operation="upsert".*status="success"`, `2`)
	assertMetricLine(t, output, `vault_test_operations_total`,
		`domain="user".*operation="login".*status="error"`, `1`)
	assertMetricLine(t, output, `vault_test_operation_duration_seconds_count`,
		`domain="account".*operation="upsert".*status="success"`, `1`)
}

func TestObserve(t *testing.T) {
	provider, err := NewProvider("observe_test")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "observe_test")
	require.NoError(t, err)

	ctx := context.Background()
	start := time.Now()
	Observe(ctx, bm, "otp", "bulk", start, nil)
	Observe(ctx, bm, "otp", "bulk", start, assert.AnError)

	output := scrape(t, provider)
	assertMetricLine(t, output, `observe_test_operations_total`,
		`domain="otp".*operation="bulk".*status="success"`, `1`)
	assertMetricLine(t, output, `observe_test_operations_total`,
		`domain="otp".*operation="bulk".*status="error"`, `1`)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	m := NewNoOpBusinessMetrics()
	assert.NotPanics(t, func() {
		m.RecordOperation(context.Background(), "account", "list", StatusSuccess)
		m.RecordDuration(context.Background(), "account", "list", time.Second, StatusSuccess)
		Observe(context.Background(), m, "account", "list", time.Now(), nil)
	})
}
