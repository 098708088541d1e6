package repository

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"TourWatch/internal/model"
	"TourWatch/storage/database"
)

type EFirRepository struct {
	db *gorm.DB
}

var (
	efirRepo *EFirRepository
	efirOnce sync.Once
)

func EFir() *EFirRepository {
	efirOnce.Do(func() {
		efirRepo = &EFirRepository{db: database.DB()}
	})
	return efirRepo
}

func (r *EFirRepository) Create(ctx context.Context, efir *model.EFir) error {
	return r.db.WithContext(ctx).Create(efir).Error
}

func (r *EFirRepository) GetByPublicID(ctx context.Context, publicID int64) (*model.EFir, error) {
	var efir model.EFir
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&efir).Error
	if err != nil {
		return nil, err
	}
	return &efir, nil
}

func (r *EFirRepository) List(ctx context.Context) ([]model.EFir, error) {
	var efirs []model.EFir
	err := r.db.WithContext(ctx).Order("generated_at DESC").Find(&efirs).Error
	return efirs, err
}

// UpdateStatus 推进报案单状态，only forward：调用方负责校验
func (r *EFirRepository) UpdateStatus(ctx context.Context, publicID int64, status model.EFirStatus, filedAt, resolvedAt *time.Time) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if filedAt != nil {
		updates["filed_at"] = filedAt
	}
	if resolvedAt != nil {
		updates["resolved_at"] = resolvedAt
	}

	return r.db.WithContext(ctx).
		Model(&model.EFir{}).
		Where("public_id = ?", publicID).
		Updates(updates).Error
}

func (r *EFirRepository) CountByTourist(ctx context.Context, touristPublicID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.EFir{}).
		Where("tourist_public_id = ?", touristPublicID).
		Count(&count).Error
	return count, err
}

// CountGroupByStatus 按状态统计报案单数量
func (r *EFirRepository) CountGroupByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.EFir{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out, nil
}
