package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/accounts/internal/auth/usecase"
	"github.com/allisson/accounts/internal/httputil"
)

// AuthenticationMiddleware authenticates requests via a bearer access token
// in the Authorization header.
//
// The token passes the full validation chain in AuthUseCase.CurrentUser:
// signature and expiry verification, token kind check, revocation check, and
// account lookup. On success the user's public view is stored in the request
// context for GetUser.
//
// Missing or malformed headers and any failed validation produce a 401 with
// an identical body, so callers cannot learn why a token was rejected.
func AuthenticationMiddleware(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c)
		if err != nil {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		user, err := authUseCase.CurrentUser(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
