package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/tradehub/internal/features/users"
	"github.com/xyz-asif/tradehub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register godoc
// @Summary Register a new user
// @Description Create an account with username, email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "User registration data"
// @Success 201 {object} response.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	user, tok, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, AuthResponse{User: user, AccessToken: tok.Token})
}

// Login godoc
// @Summary Login user
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "User login credentials"
// @Success 200 {object} response.SuccessResponse{data=AuthResponse}
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	user, tok, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, AuthResponse{User: user, AccessToken: tok.Token})
}

// Logout godoc
// @Summary Revoke the current session token
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	current, ok := users.Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	if err := h.service.Logout(c.Request.Context(), current.ID, users.CurrentToken(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Logged out"})
}

// LogoutAll godoc
// @Summary Revoke every session token of the current user
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Router /auth/logout-all [post]
func (h *Handler) LogoutAll(c *gin.Context) {
	current, ok := users.Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	if err := h.service.LogoutAll(c.Request.Context(), current.ID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "All sessions revoked"})
}

// Me godoc
// @Summary Get current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=users.User}
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	current, ok := users.Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}
	response.Success(c, current)
}
