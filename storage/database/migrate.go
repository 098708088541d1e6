package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"TourWatch/internal/model"
	"TourWatch/pkg/logger"
)

// Migrate 运行数据库迁移，创建所有表
func Migrate() error {
	db := DB()
	if db == nil {
		return gorm.ErrInvalidDB
	}

	logger.Logger.Info("Starting database migration...")

	err := db.AutoMigrate(
		&model.Operator{},
		&model.Tourist{},
		&model.LocationLog{},
		&model.Incident{},
		&model.SosAlert{},
		&model.EFir{},
		&model.RestrictedZone{},
	)

	if err != nil {
		logger.Logger.Error("Database migration failed", zap.Error(err))
		return err
	}

	logger.Logger.Info("Database migration completed successfully")
	return nil
}
