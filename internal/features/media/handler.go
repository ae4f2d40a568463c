package media

import (
	"context"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/tradehub/internal/pkg/cloudinary"
	"github.com/xyz-asif/tradehub/internal/pkg/logger"
	"github.com/xyz-asif/tradehub/internal/pkg/response"
)

// Uploader stores image bytes and returns their metadata.
type Uploader interface {
	UploadImage(ctx context.Context, file multipart.File, originalName, mimetype string) (*cloudinary.UploadResult, error)
}

type Handler struct {
	uploader Uploader
}

// NewHandler builds the upload handler. A nil uploader answers 503.
func NewHandler(uploader Uploader) *Handler {
	return &Handler{uploader: uploader}
}

// UploadImage godoc
// @Summary Upload an image
// @Description Store an image on Cloudinary. The returned metadata is what trades and forum posts reference.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image to upload"
// @Success 201 {object} response.SuccessResponse{data=cloudinary.UploadResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /media/upload [post]
func (h *Handler) UploadImage(c *gin.Context) {
	if h.uploader == nil {
		response.ServiceUnavailable(c, "Uploads are not configured", "UPLOADS_DISABLED")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required", "MISSING_FILE")
		return
	}
	defer file.Close()

	if err := cloudinary.ValidateImageFile(header); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_FILE")
		return
	}

	result, err := h.uploader.UploadImage(c.Request.Context(), file, header.Filename, cloudinary.Mimetype(header))
	if err != nil {
		logger.Error("media: %v", err)
		response.InternalServerError(c, "Failed to upload file", "UPLOAD_FAILED")
		return
	}

	response.Created(c, result)
}
