package events

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/tradehub/internal/features/users"
	"github.com/xyz-asif/tradehub/internal/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func parseID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid event ID", "INVALID_ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

func currentUser(c *gin.Context) (*users.User, bool) {
	current, ok := users.Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
	}
	return current, ok
}

// loadManaged fetches the event and checks that the caller created it or is staff.
func (h *Handler) loadManaged(c *gin.Context) (*Event, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}
	current, ok := currentUser(c)
	if !ok {
		return nil, false
	}

	event, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return nil, false
	}
	if event.CreatorID != current.ID && !current.Role.IsStaff() {
		response.Forbidden(c, "Only the creator can manage this event", "FORBIDDEN")
		return nil, false
	}
	return event, true
}

// CreateEvent godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEventRequest true "Event"
// @Success 201 {object} response.SuccessResponse{data=Event}
// @Failure 422 {object} response.ErrorResponse
// @Router /events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
	current, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	event, err := h.service.Create(c.Request.Context(), CreateEventInput{
		Title:           req.Title,
		Description:     req.Description,
		Type:            req.Type,
		Prizes:          req.Prizes,
		Requirements:    req.Requirements,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		CreatorID:       current.ID,
		MaxParticipants: req.MaxParticipants,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, event)
}

// GetEvent godoc
// @Summary Get an event
// @Description Returns the stored status and the status derived at request time
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.SuccessResponse{data=EventResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /events/{id} [get]
func (h *Handler) GetEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	view, err := h.service.View(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateEvent godoc
// @Summary Edit an event
// @Description Changing startDate or endDate re-derives the stored status
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body UpdateEventRequest true "Fields"
// @Success 200 {object} response.SuccessResponse{data=Event}
// @Router /events/{id} [patch]
func (h *Handler) UpdateEvent(c *gin.Context) {
	event, ok := h.loadManaged(c)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), event.ID, UpdateEventInput{
		Title:                req.Title,
		Description:          req.Description,
		Type:                 req.Type,
		Prizes:               req.Prizes,
		Requirements:         req.Requirements,
		MaxParticipants:      req.MaxParticipants,
		ClearMaxParticipants: req.ClearMaxParticipants,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		ClearStartDate:       req.ClearStartDate,
		ClearEndDate:         req.ClearEndDate,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, updated)
}

// RefreshEvent godoc
// @Summary Re-derive an event's stored status
// @Tags events
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} response.SuccessResponse{data=Event}
// @Router /events/{id}/refresh [post]
func (h *Handler) RefreshEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	event, err := h.service.Refresh(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, event)
}

// JoinEvent godoc
// @Summary Join an event
// @Tags events
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} response.SuccessResponse{data=Event}
// @Failure 409 {object} response.ErrorResponse
// @Router /events/{id}/join [post]
func (h *Handler) JoinEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	current, ok := currentUser(c)
	if !ok {
		return
	}

	event, err := h.service.Join(c.Request.Context(), id, current.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, event)
}

// LeaveEvent godoc
// @Summary Leave an event
// @Tags events
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} response.SuccessResponse{data=Event}
// @Failure 404 {object} response.ErrorResponse
// @Router /events/{id}/join [delete]
func (h *Handler) LeaveEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	current, ok := currentUser(c)
	if !ok {
		return
	}

	event, err := h.service.Leave(c.Request.Context(), id, current.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} response.SuccessResponse
// @Router /events/{id} [delete]
func (h *Handler) DeleteEvent(c *gin.Context) {
	event, ok := h.loadManaged(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), event.ID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Event deleted"})
}

// ListUserEvents godoc
// @Summary List events created by a user
// @Tags events
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.SuccessResponse{data=[]Event}
// @Router /users/{id}/events [get]
func (h *Handler) ListUserEvents(c *gin.Context) {
	creatorID, ok := parseID(c)
	if !ok {
		return
	}

	events, err := h.service.ListByCreator(c.Request.Context(), creatorID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, events)
}
