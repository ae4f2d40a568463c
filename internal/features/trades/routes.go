package trades

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	trades := router.Group("/trades")
	{
		trades.POST("", auth, handler.CreateTrade)
		trades.GET("/:id", handler.GetTrade)
		trades.PATCH("/:id", auth, handler.UpdateTrade)
		trades.POST("/:id/status", auth, handler.TransitionTrade)
		trades.POST("/:id/images", auth, handler.AttachImage)
		trades.DELETE("/:id", auth, handler.DeleteTrade)
	}

	router.GET("/users/:id/trades", handler.ListUserTrades)
}
