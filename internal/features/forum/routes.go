package forum

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the forum endpoints. limit throttles voting.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, auth, limit gin.HandlerFunc) {
	forum := router.Group("/forum")
	{
		posts := forum.Group("/posts")
		posts.POST("", auth, handler.CreatePost)
		posts.GET("/:id", handler.GetPost)
		posts.DELETE("/:id", auth, handler.DeletePost)
		posts.POST("/:id/vote", auth, limit, handler.VotePost)
		posts.GET("/:id/comments", handler.ListComments)
		posts.POST("/:id/comments", auth, handler.CreateComment)

		forum.DELETE("/comments/:id", auth, handler.DeleteComment)
	}
}
