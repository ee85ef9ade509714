package pkg

import (
	"fmt"

	"github.com/Rtx09x/Meow-Mocks/internal/config"
	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsProduction() {
		logLevel = logger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// AutoMigrate creates or updates the tables the service owns.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.ExamResult{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
