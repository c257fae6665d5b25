package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// MaxPageLimit is the largest page a client may request.
const MaxPageLimit = 500

// ParsePagination reads the optional offset and limit query parameters.
// When neither is present it returns limit 0, meaning "no paging".
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offsetStr, hasOffset := c.GetQuery("offset")
	limitStr, hasLimit := c.GetQuery("limit")
	if !hasOffset && !hasLimit {
		return 0, 0, nil
	}

	if hasOffset {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
		}
	}

	limit = 50
	if hasLimit {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > MaxPageLimit {
			return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and %d", MaxPageLimit)
		}
	}

	return offset, limit, nil
}
