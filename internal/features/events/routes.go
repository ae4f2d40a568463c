package events

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the event endpoints. limit throttles roster changes.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, auth, limit gin.HandlerFunc) {
	events := router.Group("/events")
	{
		events.POST("", auth, handler.CreateEvent)
		events.GET("/:id", handler.GetEvent)
		events.PATCH("/:id", auth, handler.UpdateEvent)
		events.POST("/:id/refresh", auth, handler.RefreshEvent)
		events.DELETE("/:id", auth, handler.DeleteEvent)

		// Roster
		events.POST("/:id/join", auth, limit, handler.JoinEvent)
		events.DELETE("/:id/join", auth, limit, handler.LeaveEvent)
	}

	router.GET("/users/:id/events", handler.ListUserEvents)
}
