package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/tradehub/internal/pkg/logger"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
)

// ErrorResponse represents a standard error payload returned by the API
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid token"`
	Code  string `json:"code,omitempty" example:"AUTH_INVALID_TOKEN"`
	Field string `json:"field,omitempty" example:"username"`
}

// SuccessResponse represents a standard success payload
type SuccessResponse struct {
	Status string      `json:"status" example:"success"`
	Data   interface{} `json:"data"`
}

// Success sends a 200 OK response with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Status: "success",
		Data:   data,
	})
}

// Created sends a 201 Created response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Status: "success",
		Data:   data,
	})
}

// Error sends an error response with custom status code and message
func Error(c *gin.Context, statusCode int, message string, errorCode ...string) {
	code := ""
	if len(errorCode) > 0 {
		code = errorCode[0]
	}

	c.JSON(statusCode, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusBadRequest, message, errorCode...)
}

// Unauthorized sends a 401 Unauthorized error
func Unauthorized(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusUnauthorized, message, errorCode...)
}

// Forbidden sends a 403 Forbidden error
func Forbidden(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusForbidden, message, errorCode...)
}

// InternalServerError sends a 500 Internal Server Error
func InternalServerError(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusInternalServerError, message, errorCode...)
}

// ServiceUnavailable sends a 503 Service Unavailable error
func ServiceUnavailable(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusServiceUnavailable, message, errorCode...)
}

// BindJSONError handles JSON decode errors in request body
func BindJSONError(c *gin.Context, err error) {
	BadRequest(c, "Invalid request format: "+err.Error(), "INVALID_JSON")
}

// statusFor maps taxonomy codes to HTTP status codes.
var statusFor = map[apperrors.Code]int{
	apperrors.CodeValidation:        http.StatusUnprocessableEntity,
	apperrors.CodeNotFound:          http.StatusNotFound,
	apperrors.CodeInvalidTransition: http.StatusConflict,
	apperrors.CodeCapacity:          http.StatusConflict,
	apperrors.CodeAlreadyJoined:     http.StatusConflict,
	apperrors.CodeConcurrency:       http.StatusConflict,
	apperrors.CodeSelfReport:        http.StatusBadRequest,
	apperrors.CodeUnauthorized:      http.StatusUnauthorized,
	apperrors.CodeForbidden:         http.StatusForbidden,
}

// FromError writes the response matching a service error. Unknown errors are
// logged and hidden behind a 500.
func FromError(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)
	status, ok := statusFor[code]
	if !ok {
		logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		InternalServerError(c, "Something went wrong", string(apperrors.CodeUnknown))
		return
	}

	payload := ErrorResponse{Error: err.Error(), Code: string(code)}
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		payload.Error = ve.Message
		payload.Field = ve.Field
	}
	c.JSON(status, payload)
}
