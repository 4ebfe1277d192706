package handlers

import (
	"net/http"

	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService *services.JobService
}

func NewJobHandler(base *BaseHandler, jobService *services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes. Detail resolves the caller when a token is sent
	// so has_applied can be filled in.
	public := r.Group("/jobs")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("", h.SearchJobs)
		public.GET("/home", h.Homepage)
		public.GET("/:jobId", h.GetJob)
	}

	// Protected routes - company only
	company := r.Group("/jobs")
	company.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCompany))
	{
		company.POST("", h.CreateJob)
		company.GET("/my", h.MyJobs)
		company.PUT("/:jobId", h.UpdateJob)
		company.DELETE("/:jobId", h.DeleteJob)
	}
}

func (h *JobHandler) SearchJobs(c *gin.Context) {
	var req dto.SearchJobsRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	resp, err := h.jobService.SearchJobs(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) Homepage(c *gin.Context) {
	var req dto.SearchJobsRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	resp, err := h.jobService.Homepage(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.Param("jobId")
	viewerID := middleware.GetUserID(c)

	resp, err := h.jobService.GetJob(c.Request.Context(), jobID, viewerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.jobService.CreateJob(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *JobHandler) MyJobs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.jobService.MyJobs(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.jobService.UpdateJob(c.Request.Context(), c.Param("jobId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), c.Param("jobId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}
