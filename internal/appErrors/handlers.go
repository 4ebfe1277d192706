package appErrors

import (
	"jobboard_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON envelope every error answer uses.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes an AppError to the response. Server-side errors
// are logged with their cause, client errors are not.
func HandleError(c *gin.Context, err *AppError) {
	if err.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", err, "path", c.Request.URL.Path)
	}
	c.JSON(err.HTTPCode, ErrorResponse{Error: err})
}

// HandleValidationError converts a gin binding error into the standard
// validation failure envelope.
func HandleValidationError(c *gin.Context, err error) {
	HandleError(c, ErrValidationFailed.WithDetails(gin.H{"details": err.Error()}))
}
