package trades

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
		response.BadRequest(c, "Invalid ID", "INVALID_ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// loadOwned fetches the trade and checks that the caller owns it or is staff.
func (h *Handler) loadOwned(c *gin.Context) (*Trade, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}
	current, ok := users.Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return nil, false
	}

	trade, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return nil, false
	}
	if trade.OwnerID != current.ID && !current.Role.IsStaff() {
		response.Forbidden(c, "You can only modify your own trades", "FORBIDDEN")
		return nil, false
	}
	return trade, true
}

// CreateTrade godoc
// @Summary Create a trade listing
// @Tags trades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTradeRequest true "Trade"
// @Success 201 {object} response.SuccessResponse{data=Trade}
// @Failure 422 {object} response.ErrorResponse
// @Router /trades [post]
func (h *Handler) CreateTrade(c *gin.Context) {
	current, ok := users.Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	var req CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	trade, err := h.service.Create(c.Request.Context(), CreateTradeInput{
		OwnerID:       current.ID,
		ItemOffered:   req.ItemOffered,
		ItemRequested: req.ItemRequested,
		Description:   req.Description,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, trade)
}

// GetTrade godoc
// @Summary Get a trade
// @Tags trades
// @Produce json
// @Param id path string true "Trade ID"
// @Success 200 {object} response.SuccessResponse{data=Trade}
// @Failure 404 {object} response.ErrorResponse
// @Router /trades/{id} [get]
func (h *Handler) GetTrade(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	trade, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, trade)
}

// ListUserTrades godoc
// @Summary List a user's trades
// @Tags trades
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.SuccessResponse{data=[]Trade}
// @Router /users/{id}/trades [get]
func (h *Handler) ListUserTrades(c *gin.Context) {
	ownerID, ok := parseID(c)
	if !ok {
		return
	}

	trades, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, trades)
}

// UpdateTrade godoc
// @Summary Edit a trade listing
// @Tags trades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trade ID"
// @Param request body UpdateTradeRequest true "Fields"
// @Success 200 {object} response.SuccessResponse{data=Trade}
// @Router /trades/{id} [patch]
func (h *Handler) UpdateTrade(c *gin.Context) {
	trade, ok := h.loadOwned(c)
	if !ok {
		return
	}

	var req UpdateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	updated, err := h.service.UpdateDetails(c.Request.Context(), trade.ID, Details{
		ItemOffered:   req.ItemOffered,
		ItemRequested: req.ItemRequested,
		Description:   req.Description,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, updated)
}

// TransitionTrade godoc
// @Summary Change trade status
// @Description open -> in_progress -> completed, cancellable until completed
// @Tags trades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trade ID"
// @Param request body TransitionRequest true "Target status"
// @Success 200 {object} response.SuccessResponse{data=Trade}
// @Failure 409 {object} response.ErrorResponse
// @Router /trades/{id}/status [post]
func (h *Handler) TransitionTrade(c *gin.Context) {
	trade, ok := h.loadOwned(c)
	if !ok {
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	updated, err := h.service.Transition(c.Request.Context(), trade.ID, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, updated)
}

// AttachImage godoc
// @Summary Attach an uploaded image to a trade
// @Tags trades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trade ID"
// @Param request body AttachImageRequest true "Image URL"
// @Success 200 {object} response.SuccessResponse{data=Trade}
// @Router /trades/{id}/images [post]
func (h *Handler) AttachImage(c *gin.Context) {
	trade, ok := h.loadOwned(c)
	if !ok {
		return
	}

	var req AttachImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	updated, err := h.service.AttachImage(c.Request.Context(), trade.ID, req.URL)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, updated)
}

// DeleteTrade godoc
// @Summary Delete a trade
// @Tags trades
// @Security BearerAuth
// @Param id path string true "Trade ID"
// @Success 200 {object} response.SuccessResponse
// @Router /trades/{id} [delete]
func (h *Handler) DeleteTrade(c *gin.Context) {
	trade, ok := h.loadOwned(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), trade.ID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Trade deleted"})
}
