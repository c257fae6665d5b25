// Package integration provides end-to-end tests for the account vault API.
// Every flow runs against both PostgreSQL and MySQL and is skipped when the
// test database is not reachable.
package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountDTO "github.com/allisson/accountvault/internal/account/http/dto"
	"github.com/allisson/accountvault/internal/app"
	"github.com/allisson/accountvault/internal/config"
	"github.com/allisson/accountvault/internal/testutil"
	userDTO "github.com/allisson/accountvault/internal/user/http/dto"
)

const seed = "JBSWY3DPEHPK3PXP"

// integrationTestContext holds the running server and the caller's token.
type integrationTestContext struct {
	server   *httptest.Server
	token    string
	dbDriver string
}

// makeRequest performs an HTTP request with a JSON body and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body any,
	useAuth bool,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if useAuth {
		req.Header.Set("Authorization", "Bearer "+ctx.token)
	}

	return ctx.do(t, req)
}

func (ctx *integrationTestContext) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()

	client := &http.Client{Timeout: 10 * time.Second}
	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// setupIntegrationTest migrates a clean database and serves the full router.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := testutil.SetupDB(t, dbDriver)
	testutil.TeardownDB(t, db)

	cfg := &config.Config{
		DBDriver:              dbDriver,
		DBConnectionString:    testutil.TestDSN(dbDriver),
		DBMaxOpenConnections:  10,
		DBMaxIdleConnections:  5,
		DBConnMaxLifetime:     time.Hour,
		ServerHost:            "localhost",
		ServerPort:            8080,
		LogLevel:              "error",
		AppSecret:             "integration-app-secret",
		SecretCipherAlgorithm: "aes-gcm",
		JWTSecret:             "integration-jwt-secret",
		JWTAlgorithm:          "HS256",
		JWTExpiration:         time.Hour,
		TOTPPeriod:            180 * time.Second,
		PasswordHashPolicy:    "interactive",
	}

	container := app.NewContainer(cfg)
	server, err := container.HTTPServer()
	require.NoError(t, err, "failed to build http server")

	ts := httptest.NewServer(server.GetHandler())
	t.Cleanup(func() {
		ts.Close()
		_ = container.Shutdown(t.Context())
	})

	return &integrationTestContext{server: ts, dbDriver: dbDriver}
}

func strPtr(s string) *string {
	return &s
}

func TestIntegration(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql"} {
		t.Run(driver, func(t *testing.T) {
			testutil.SkipIfNoDB(t, driver)
			ctx := setupIntegrationTest(t, driver)

			t.Run("health", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/health", nil, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				resp, body := ctx.makeRequest(t, http.MethodGet, "/ready", nil, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			})

			t.Run("register", func(t *testing.T) {
				request := map[string]string{"email": "John@Example.com", "password": "correct-horse-battery"}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/auth/register", request, false)
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				var user userDTO.UserResponse
				require.NoError(t, json.Unmarshal(body, &user))
				assert.Equal(t, "john@example.com", user.Email)

				resp, _ = ctx.makeRequest(t, http.MethodPost, "/auth/register", request, false)
				assert.Equal(t, http.StatusConflict, resp.StatusCode)
			})

			t.Run("login", func(t *testing.T) {
				form := url.Values{"username": {"john@example.com"}, "password": {"wrong-password"}}
				req, err := http.NewRequest(http.MethodPost, ctx.server.URL+"/auth/login", strings.NewReader(form.Encode()))
				require.NoError(t, err)
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

				resp, _ := ctx.do(t, req)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

				form.Set("password", "correct-horse-battery")
				req, err = http.NewRequest(http.MethodPost, ctx.server.URL+"/auth/login", strings.NewReader(form.Encode()))
				require.NoError(t, err)
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

				resp, body := ctx.do(t, req)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var token userDTO.TokenResponse
				require.NoError(t, json.Unmarshal(body, &token))
				assert.Equal(t, "bearer", token.TokenType)
				ctx.token = token.AccessToken

				resp, body = ctx.makeRequest(t, http.MethodGet, "/auth/me", nil, true)
				require.Equal(t, http.StatusOK, resp.StatusCode)
				assert.Contains(t, string(body), "john@example.com")
			})

			t.Run("accounts require a token", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/accounts", nil, false)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
				assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
			})

			t.Run("upsert and reveal", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/accounts", accountDTO.UpsertAccountRequest{
					Code:     "github",
					Username: strPtr("john"),
					Password: strPtr("hunter2"),
					Authen:   strPtr(seed),
				}, true)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				resp, body = ctx.makeRequest(t, http.MethodGet, "/accounts/github/secrets", nil, true)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var secrets accountDTO.SecretsResponse
				require.NoError(t, json.Unmarshal(body, &secrets))
				require.NotNil(t, secrets.Password)
				assert.Equal(t, "hunter2", *secrets.Password)
				require.NotNil(t, secrets.Authen)
				assert.Equal(t, seed, *secrets.Authen)
			})

			t.Run("secrets are encrypted at rest", func(t *testing.T) {
				db := testutil.SetupDBWithoutCleanup(t, ctx.dbDriver)
				defer testutil.TeardownDB(t, db)

				stored := testutil.StoredAccountSecret(t, db, ctx.dbDriver, "github", "password_enc")
				require.True(t, stored.Valid)
				assert.NotContains(t, stored.String, "hunter2")

				stored = testutil.StoredAccountSecret(t, db, ctx.dbDriver, "github", "authen_enc")
				require.True(t, stored.Valid)
				assert.NotContains(t, stored.String, seed)
			})

			t.Run("otp", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/accounts/github/otp", nil, true)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var otp accountDTO.OTPResponse
				require.NoError(t, json.Unmarshal(body, &otp))
				require.NotNil(t, otp.OTP)
				assert.Len(t, *otp.OTP, 6)
				require.NotNil(t, otp.Left)
				assert.True(t, *otp.Left >= 1 && *otp.Left <= 180)

				resp, body = ctx.makeRequest(t, http.MethodPost, "/accounts/otp/bulk",
					accountDTO.BulkOTPRequest{Codes: []string{"github", "missing"}}, true)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var bulk accountDTO.BulkOTPResponse
				require.NoError(t, json.Unmarshal(body, &bulk))
				require.Contains(t, bulk.Results, "github")
				assert.NotNil(t, bulk.Results["github"].OTP)
				require.Contains(t, bulk.Results, "missing")
				assert.Nil(t, bulk.Results["missing"].OTP)
				assert.Nil(t, bulk.Results["missing"].Left)
			})

			t.Run("partial update keeps untouched fields", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/accounts", accountDTO.UpsertAccountRequest{
					Code:     "github",
					Password: strPtr(""),
					Note:     strPtr("work account"),
				}, true)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				resp, body := ctx.makeRequest(t, http.MethodGet, "/accounts", nil, true)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var accounts []accountDTO.AccountResponse
				require.NoError(t, json.Unmarshal(body, &accounts))
				require.Len(t, accounts, 1)
				require.NotNil(t, accounts[0].Username)
				assert.Equal(t, "john", *accounts[0].Username)
				require.NotNil(t, accounts[0].Note)
				assert.Equal(t, "work account", *accounts[0].Note)
				assert.NotContains(t, string(body), "password")

				_, body = ctx.makeRequest(t, http.MethodGet, "/accounts/github/secrets", nil, true)
				var secrets accountDTO.SecretsResponse
				require.NoError(t, json.Unmarshal(body, &secrets))
				assert.Nil(t, secrets.Password)
				require.NotNil(t, secrets.Authen)
			})

			t.Run("delete", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodDelete, "/accounts/github", nil, true)
				require.Equal(t, http.StatusOK, resp.StatusCode)
				assert.JSONEq(t, `{"ok":true}`, string(body))

				resp, _ = ctx.makeRequest(t, http.MethodDelete, "/accounts/github", nil, true)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)

				resp, _ = ctx.makeRequest(t, http.MethodGet, "/accounts/github/otp", nil, true)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			})
		})
	}
}
