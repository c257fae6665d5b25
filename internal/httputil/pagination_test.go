package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/allisson/accountvault/internal/httputil"
)

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		expectedOffset int
		expectedLimit  int
		errorMsg       string
	}{
		{name: "no paging", url: "/", expectedOffset: 0, expectedLimit: 0},
		{name: "offset only uses default limit", url: "/?offset=10", expectedOffset: 10, expectedLimit: 50},
		{name: "limit only", url: "/?limit=20", expectedOffset: 0, expectedLimit: 20},
		{name: "both", url: "/?offset=5&limit=500", expectedOffset: 5, expectedLimit: 500},
		{name: "negative offset", url: "/?offset=-1", errorMsg: "invalid offset"},
		{name: "non numeric offset", url: "/?offset=abc", errorMsg: "invalid offset"},
		{name: "zero limit", url: "/?limit=0", errorMsg: "invalid limit"},
		{name: "limit too large", url: "/?limit=501", errorMsg: "invalid limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tt.url, nil)

			offset, limit, err := httputil.ParsePagination(c)
			if tt.errorMsg != "" {
				assert.ErrorContains(t, err, tt.errorMsg)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedOffset, offset)
			assert.Equal(t, tt.expectedLimit, limit)
		})
	}
}
