package wishlist

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	wishlist := router.Group("/wishlist")
	wishlist.Use(auth)
	{
		wishlist.GET("", handler.List)
		wishlist.POST("", handler.Add)
		wishlist.DELETE("/:id", handler.Remove)
	}
}
