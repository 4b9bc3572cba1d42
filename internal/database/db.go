package database

import (
	"fmt"
	"time"

	"github.com/justsurfingit/uplift/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the Postgres database named by dsn and migrates the listing tables.
// Seed listings are inserted when the jobs table is empty.
func Connect(dsn string, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("Database connection established")

	logger.Info("Running migrations")
	if err := db.AutoMigrate(&models.Job{}, &models.ProcessedMessage{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var count int64
	if err := db.Model(&models.Job{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}
	if count == 0 {
		seed := models.SeedJobs(time.Now())
		if err := db.Create(&seed).Error; err != nil {
			return nil, fmt.Errorf("seed jobs: %w", err)
		}
		logger.Info("Seeded starter listings", zap.Int("count", len(seed)))
	}
	return db, nil
}
