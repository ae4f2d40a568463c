package users

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the user endpoints. auth authenticates the caller,
// staff admits admins and moderators, admin admits admins only.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, auth, staff, admin gin.HandlerFunc) {
	users := router.Group("/users")
	{
		// Self service
		users.PATCH("/me", auth, handler.UpdateMe)
		users.POST("/me/verification-request", auth, handler.RequestVerification)
		users.POST("/me/middleman-request", auth, handler.RequestMiddleman)

		users.GET("/:id", handler.GetUser)

		// Moderation
		users.PATCH("/:id/role", auth, staff, handler.ChangeRole)
		users.POST("/:id/ban", auth, staff, handler.BanUser)
		users.POST("/:id/unban", auth, staff, handler.UnbanUser)
		users.POST("/:id/credibility", auth, admin, handler.AdjustCredibility)
	}
}
