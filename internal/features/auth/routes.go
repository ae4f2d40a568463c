package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the auth endpoints. auth is the middleware returned by
// NewAuthMiddleware; limit throttles credential attempts.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, auth, limit gin.HandlerFunc) {
	group := router.Group("/auth")
	{
		group.POST("/register", limit, handler.Register)
		group.POST("/login", limit, handler.Login)
		group.POST("/logout", auth, handler.Logout)
		group.POST("/logout-all", auth, handler.LogoutAll)
		group.GET("/me", auth, handler.Me)
	}
}
