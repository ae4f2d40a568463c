package reports

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/tradehub/internal/features/users"
	"github.com/xyz-asif/tradehub/internal/lifecycle"
	"github.com/xyz-asif/tradehub/internal/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// StatusRequest asks for an explicit review status
type StatusRequest struct {
	Status lifecycle.ReportStatus `json:"status" binding:"required"`
}

func parseID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report ID", "INVALID_ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// CreateReport godoc
// @Summary Report a user
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReportRequest true "Report"
// @Success 201 {object} response.SuccessResponse{data=Report}
// @Failure 400 {object} response.ErrorResponse
// @Router /reports [post]
func (h *Handler) CreateReport(c *gin.Context) {
	current, ok := users.Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}
	reported, err := primitive.ObjectIDFromHex(req.ReportedUserID)
	if err != nil {
		response.BadRequest(c, "Invalid reported user ID", "INVALID_ID")
		return
	}

	report, err := h.service.Create(c.Request.Context(), reported, current.ID, req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, report)
}

// ListReports godoc
// @Summary List reports in a review state
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, reviewed or resolved (default pending)"
// @Param reportedUserId query string false "Only reports against this user"
// @Success 200 {object} response.SuccessResponse{data=[]Report}
// @Router /reports [get]
func (h *Handler) ListReports(c *gin.Context) {
	ctx := c.Request.Context()

	if against := c.Query("reportedUserId"); against != "" {
		userID, err := primitive.ObjectIDFromHex(against)
		if err != nil {
			response.BadRequest(c, "Invalid user ID", "INVALID_ID")
			return
		}
		reports, err := h.service.ListAgainstUser(ctx, userID)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, reports)
		return
	}

	status := lifecycle.ReportStatus(c.DefaultQuery("status", string(lifecycle.ReportPending)))
	reports, err := h.service.ListByStatus(ctx, status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, reports)
}

// GetReport godoc
// @Summary Get a report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} response.SuccessResponse{data=Report}
// @Router /reports/{id} [get]
func (h *Handler) GetReport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	report, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, report)
}

// AdvanceReport godoc
// @Summary Move a report to its next review state
// @Tags reports
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} response.SuccessResponse{data=Report}
// @Failure 409 {object} response.ErrorResponse
// @Router /reports/{id}/advance [post]
func (h *Handler) AdvanceReport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	report, err := h.service.Advance(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, report)
}

// SetReportStatus godoc
// @Summary Set a report's review state
// @Description Only the next state in pending -> reviewed -> resolved is accepted
// @Tags reports
// @Accept json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param request body StatusRequest true "Target status"
// @Success 200 {object} response.SuccessResponse{data=Report}
// @Failure 409 {object} response.ErrorResponse
// @Router /reports/{id}/status [post]
func (h *Handler) SetReportStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	report, err := h.service.Transition(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, report)
}
