package http

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/accountvault/internal/errors"
	"github.com/allisson/accountvault/internal/httputil"
	userDomain "github.com/allisson/accountvault/internal/user/domain"
)

// Authenticator resolves a session token to the user it was issued to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*userDomain.User, error)
}

// AuthenticationMiddleware requires a valid session token in the Authorization header.
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer").
// A missing or malformed header and every token failure answer the same 401.
// Downstream handlers read the caller with GetUser.
func AuthenticationMiddleware(authenticator Authenticator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		user, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))

		logger.Debug("authentication successful", slog.String("user_id", user.ID.String()))

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
