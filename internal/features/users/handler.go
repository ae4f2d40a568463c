package users

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/tradehub/internal/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func parseUserID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID", "INVALID_ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// GetUser godoc
// @Summary Get user profile
// @Description Get the public profile of a user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, user.ToPublicUser())
}

// UpdateMe godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} response.SuccessResponse{data=User}
// @Failure 422 {object} response.ErrorResponse
// @Router /users/me [patch]
func (h *Handler) UpdateMe(c *gin.Context) {
	current, ok := Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	user, err := h.service.Update(c.Request.Context(), current.ID, UpdateUserInput{
		Username:        req.Username,
		Email:           req.Email,
		RobloxUsername:  req.RobloxUsername,
		AvatarURL:       req.AvatarURL,
		Bio:             req.Bio,
		DiscordUsername: req.DiscordUsername,
		Timezone:        req.Timezone,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, user)
}

// RequestVerification godoc
// @Summary Request account verification
// @Tags users
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=User}
// @Router /users/me/verification-request [post]
func (h *Handler) RequestVerification(c *gin.Context) {
	current, ok := Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	user, err := h.service.RequestVerification(c.Request.Context(), current.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}

// RequestMiddleman godoc
// @Summary Apply to become a middleman
// @Tags users
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=User}
// @Router /users/me/middleman-request [post]
func (h *Handler) RequestMiddleman(c *gin.Context) {
	current, ok := Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	user, err := h.service.RequestMiddleman(c.Request.Context(), current.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}

// ChangeRole godoc
// @Summary Change a user's role
// @Description Staff only. Changing to banned requires banReason.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body ChangeRoleRequest true "New role"
// @Success 200 {object} response.SuccessResponse{data=User}
// @Failure 422 {object} response.ErrorResponse
// @Router /users/{id}/role [patch]
func (h *Handler) ChangeRole(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	in := UpdateUserInput{Role: &req.Role}
	if req.BanReason != "" {
		in.BanReason = &req.BanReason
	}

	user, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}

// BanUser godoc
// @Summary Ban a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body BanRequest true "Ban reason"
// @Success 200 {object} response.SuccessResponse{data=User}
// @Router /users/{id}/ban [post]
func (h *Handler) BanUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	if current, ok := Current(c); ok && current.ID == id {
		response.BadRequest(c, "You cannot ban yourself", "SELF_BAN")
		return
	}

	var req BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	user, err := h.service.Ban(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}

// UnbanUser godoc
// @Summary Lift a ban
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UnbanRequest false "Role to restore"
// @Success 200 {object} response.SuccessResponse{data=User}
// @Router /users/{id}/unban [post]
func (h *Handler) UnbanUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req UnbanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindJSONError(c, err)
			return
		}
	}

	user, err := h.service.Unban(c.Request.Context(), id, req.Role)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}

// AdjustCredibility godoc
// @Summary Adjust credibility score
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body CredibilityRequest true "Score delta"
// @Success 200 {object} response.SuccessResponse
// @Router /users/{id}/credibility [post]
func (h *Handler) AdjustCredibility(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req CredibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	user, err := h.service.AdjustCredibility(c.Request.Context(), id, req.Delta)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user.ToPublicUser())
}
