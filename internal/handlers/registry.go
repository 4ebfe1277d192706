package handlers

// AppHandlers bundles every handler for route registration.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	JobHandler         *JobHandler
	ApplicationHandler *ApplicationHandler
	DashboardHandler   *DashboardHandler
	FileHandler        *FileHandler
}
