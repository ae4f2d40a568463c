package reports

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the report endpoints. Filing is open to any signed-in
// user behind limit; the review queue is staff only.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, auth, staff, limit gin.HandlerFunc) {
	reports := router.Group("/reports", auth)
	{
		reports.POST("", limit, handler.CreateReport)

		reports.GET("", staff, handler.ListReports)
		reports.GET("/:id", staff, handler.GetReport)
		reports.POST("/:id/advance", staff, handler.AdvanceReport)
		reports.POST("/:id/status", staff, handler.SetReportStatus)
	}
}
