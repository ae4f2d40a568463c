package media

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	media := router.Group("/media")
	media.Use(auth)
	{
		media.POST("/upload", handler.UploadImage)
	}
}
