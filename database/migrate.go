package database

import (
	"fmt"

	"jobboard_backend/internal/config"
	"jobboard_backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm opens GORM against the configured driver. TranslateError
// lets the repositories detect unique-index violations portably.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	db, err := Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	gormDB = db
	return db, nil
}

// Open connects to the database identified by driver and dsn.
func Open(driver, dsn string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}

	switch driver {
	case "", "postgres":
		return gorm.Open(postgres.Open(dsn), gormCfg)
	case "mysql":
		return gorm.Open(mysql.Open(dsn), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// AutoMigrate creates or updates the schema for all models, including
// the (job_id, applicant_id) unique index.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Application{},
	)
}
