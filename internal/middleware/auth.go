package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/tradehub/internal/features/users"
	"github.com/xyz-asif/tradehub/internal/pkg/response"
)

// RequireRole admits the authenticated user only if their role is one of
// roles. It must run after the auth middleware has set the current user.
func RequireRole(roles ...users.Role) gin.HandlerFunc {
	allowed := make(map[users.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		user, ok := users.Current(c)
		if !ok {
			response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
			c.Abort()
			return
		}
		if !allowed[user.Role] {
			response.Forbidden(c, "Insufficient permissions", "FORBIDDEN")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStaff admits admins and moderators.
func RequireStaff() gin.HandlerFunc {
	return RequireRole(users.RoleAdmin, users.RoleModerator)
}
