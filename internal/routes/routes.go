package routes

import (
	"jobboard_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches every handler under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.JobHandler.RegisterRoutes(api)
		appHandlers.ApplicationHandler.RegisterRoutes(api)
		appHandlers.DashboardHandler.RegisterRoutes(api)
		appHandlers.FileHandler.RegisterRoutes(api)
	}
}
