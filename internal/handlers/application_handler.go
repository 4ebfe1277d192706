package handlers

import (
	"net/http"

	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService *services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Apply is gated on authentication only: the service produces the
	// specific "companies cannot apply" message for the wrong role.
	apply := r.Group("/jobs")
	apply.Use(middleware.AuthMiddleware())
	{
		apply.POST("/:jobId/apply", h.Apply)
	}

	applicants := r.Group("/jobs")
	applicants.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCompany))
	{
		applicants.GET("/:jobId/applicants", h.ListApplicants)
	}

	apps := r.Group("/applications")
	apps.Use(middleware.AuthMiddleware())
	{
		apps.GET("/my", h.MyApplications)
		apps.PUT("/:applicationId/status", h.UpdateStatus)
		apps.DELETE("/:applicationId", h.Withdraw)
	}
}

// Apply accepts multipart form data: cover_letter (optional text) and
// resume (optional file).
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	coverLetter := c.PostForm("cover_letter")

	var resume *services.ResumeUpload
	fileHeader, err := c.FormFile("resume")
	if err == nil && fileHeader != nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			h.HandleServiceError(c, openErr)
			return
		}
		defer file.Close()

		resume = &services.ResumeUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Reader:      file,
		}
	}

	resp, err := h.applicationService.Apply(c.Request.Context(), c.Param("jobId"), userID, coverLetter, resume)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.MyApplications(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": resp})
}

func (h *ApplicationHandler) ListApplicants(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.ListApplicants(c.Request.Context(), c.Param("jobId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	err := h.applicationService.UpdateStatus(c.Request.Context(), c.Param("applicationId"), userID, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application status updated to " + req.Status})
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.applicationService.Withdraw(c.Request.Context(), c.Param("applicationId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application withdrawn"})
}
