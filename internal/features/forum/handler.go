package forum

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

func requireUser(c *gin.Context) (*users.User, bool) {
	current, ok := users.Current(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
	}
	return current, ok
}

// CreatePost godoc
// @Summary Create a forum post
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post"
// @Success 201 {object} response.SuccessResponse{data=Post}
// @Failure 422 {object} response.ErrorResponse
// @Router /forum/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	current, ok := requireUser(c)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), CreatePostInput{
		AuthorID: current.ID,
		Category: req.Category,
		Title:    req.Title,
		Content:  req.Content,
		Images:   req.Images,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, post)
}

// GetPost godoc
// @Summary Get a forum post
// @Tags forum
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.SuccessResponse{data=Post}
// @Failure 404 {object} response.ErrorResponse
// @Router /forum/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := h.service.GetPost(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, post)
}

// VotePost godoc
// @Summary Vote on a post
// @Description Each call adds one vote; there is no undo.
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body VoteRequest true "Direction"
// @Success 200 {object} response.SuccessResponse{data=Post}
// @Router /forum/posts/{id}/vote [post]
func (h *Handler) VotePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	post, err := h.service.Vote(c.Request.Context(), id, req.Direction)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost godoc
// @Summary Delete a forum post
// @Tags forum
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} response.SuccessResponse
// @Router /forum/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	current, ok := requireUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	post, err := h.service.GetPost(ctx, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if post.AuthorID != current.ID && !current.Role.IsStaff() {
		response.Forbidden(c, "You can only delete your own posts", "FORBIDDEN")
		return
	}

	if err := h.service.DeletePost(ctx, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Post deleted"})
}

// ListComments godoc
// @Summary List comments on a post
// @Tags forum
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.SuccessResponse{data=[]Comment}
// @Router /forum/posts/{id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, comments)
}

// CreateComment godoc
// @Summary Comment on a post
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body CreateCommentRequest true "Comment"
// @Success 201 {object} response.SuccessResponse{data=Comment}
// @Failure 404 {object} response.ErrorResponse
// @Router /forum/posts/{id}/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	current, ok := requireUser(c)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), id, current.ID, req.Content)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags forum
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} response.SuccessResponse
// @Router /forum/comments/{id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	current, ok := requireUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	comment, err := h.service.GetComment(ctx, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if comment.AuthorID != current.ID && !current.Role.IsStaff() {
		response.Forbidden(c, "You can only delete your own comments", "FORBIDDEN")
		return
	}

	if err := h.service.DeleteComment(ctx, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Comment deleted"})
}
