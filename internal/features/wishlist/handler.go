package wishlist

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

// List godoc
// @Summary List my wishlist
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=[]Item}
// @Failure 401 {object} response.ErrorResponse
// @Router /wishlist [get]
func (h *Handler) List(c *gin.Context) {
	current, ok := users.Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	items, err := h.service.List(c.Request.Context(), current.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, items)
}

// Add godoc
// @Summary Add an item to my wishlist
// @Tags wishlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddItemRequest true "Item"
// @Success 201 {object} response.SuccessResponse{data=Item}
// @Failure 400 {object} response.ErrorResponse
// @Router /wishlist [post]
func (h *Handler) Add(c *gin.Context) {
	current, ok := users.Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	item, err := h.service.Add(c.Request.Context(), current.ID, req.ItemName)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, item)
}

// Remove godoc
// @Summary Remove an item from my wishlist
// @Tags wishlist
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /wishlist/{id} [delete]
func (h *Handler) Remove(c *gin.Context) {
	current, ok := users.Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ID", "INVALID_ID")
		return
	}

	if err := h.service.Remove(c.Request.Context(), current.ID, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Item removed"})
}
