package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/tradehub/internal/features/users"
	"github.com/xyz-asif/tradehub/internal/pkg/response"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
)

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// NewAuthMiddleware creates a Gin middleware for JWT authentication. The token
// must still be held by the user and the user must not be banned.
func NewAuthMiddleware(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			response.Unauthorized(c, "Authorization header required", "AUTH_REQUIRED")
			c.Abort()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "Invalid authorization format", "INVALID_AUTH_FORMAT")
			c.Abort()
			return
		}

		user, err := service.Authenticate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, ErrBanned):
				response.Forbidden(c, "Account is banned", "ACCOUNT_BANNED")
			case errors.Is(err, apperrors.ErrUnauthorized):
				response.Unauthorized(c, err.Error(), "INVALID_TOKEN")
			default:
				response.FromError(c, err)
			}
			c.Abort()
			return
		}

		users.SetCurrent(c, user, token)
		c.Next()
	}
}
