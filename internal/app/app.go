package app

import (
	"fmt"

	"jobboard_backend/database"
	"jobboard_backend/internal/config"
	"jobboard_backend/internal/handlers"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/routes"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/storage"
	"jobboard_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Run boots the whole service: config, logger, database, router.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected", "driver", cfg.Database.Driver)

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("failed to migrate schema", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services and handlers onto a gin
// engine. Split out of Run so tests can mount the full router on
// httptest.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	store, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	logger.Info("storage initialized", "type", cfg.Storage.Type)

	userRepo := repositories.NewUserRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	applicationRepo := repositories.NewApplicationRepository(gormDB)

	authService := services.NewAuthService(userRepo)
	jobService := services.NewJobService(jobRepo, applicationRepo, userRepo)
	applicationService := services.NewApplicationService(applicationRepo, jobRepo, userRepo, store)
	dashboardService := services.NewDashboardService(jobRepo, userRepo)

	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(base, authService),
		JobHandler:         handlers.NewJobHandler(base, jobService),
		ApplicationHandler: handlers.NewApplicationHandler(base, applicationService),
		DashboardHandler:   handlers.NewDashboardHandler(base, dashboardService),
		FileHandler:        handlers.NewFileHandler(base, store),
	}

	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}
