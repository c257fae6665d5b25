package httputil

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/accountvault/internal/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestHandleErrorGin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{"not found", apperrors.Wrap(apperrors.ErrNotFound, "account not found"), http.StatusNotFound, "not_found"},
		{"conflict", apperrors.Wrap(apperrors.ErrConflict, "user exists"), http.StatusConflict, "conflict"},
		{"invalid input", apperrors.Wrap(apperrors.ErrInvalidInput, "bad code"), http.StatusUnprocessableEntity, "invalid_input"},
		{"unauthorized", apperrors.Wrap(apperrors.ErrUnauthorized, "token expired"), http.StatusUnauthorized, "unauthorized"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"internal", assert.AnError, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.expectedCode, w.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedErr, body.Error)
		})
	}

	t.Run("Unauthorized_GenericMessage", func(t *testing.T) {
		c, w := newTestContext()
		HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, "user not found"), nil)

		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
		assert.NotContains(t, w.Body.String(), "user not found")
	})

	t.Run("Internal_DoesNotLeak", func(t *testing.T) {
		c, w := newTestContext()
		HandleErrorGin(c, apperrors.New("pq: connection refused"), nil)
		assert.NotContains(t, w.Body.String(), "pq:")
	})

	t.Run("Nil_NoWrite", func(t *testing.T) {
		c, w := newTestContext()
		HandleErrorGin(c, nil, logger)
		assert.False(t, c.Writer.Written())
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext()
	HandleBadRequestGin(c, apperrors.New("unexpected EOF"), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bad_request")
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestContext()
	HandleValidationErrorGin(c, apperrors.New("email: must be a valid email address"), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}
