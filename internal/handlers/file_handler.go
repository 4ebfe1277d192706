package handlers

import (
	"io"
	"strings"

	"jobboard_backend/internal/appErrors"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// FileHandler serves stored resumes when local storage is in use; with
// S3 the signed URLs in API responses point at the bucket directly.
type FileHandler struct {
	*BaseHandler
	store storage.Storage
}

func NewFileHandler(base *BaseHandler, store storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		store:       store,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/files")
	files.Use(middleware.AuthMiddleware())
	{
		files.GET("/*path", h.GetFile)
	}
}

func (h *FileHandler) GetFile(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" || strings.Contains(path, "..") {
		appErrors.HandleError(c, appErrors.NewBadRequestError("Invalid file path"))
		return
	}

	exists, err := h.store.Exists(c.Request.Context(), path)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !exists {
		appErrors.HandleError(c, appErrors.NotFound("File"))
		return
	}

	reader, err := h.store.Get(c.Request.Context(), path)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Status(200)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Headers are already out; nothing to do but log.
		logger.CtxWarn(c.Request.Context(), "failed to stream file", "path", path, "error", err)
	}
}
