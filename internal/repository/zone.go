package repository

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"TourWatch/internal/model"
	"TourWatch/storage/database"
)

type ZoneRepository struct {
	db *gorm.DB
}

var (
	zoneRepo *ZoneRepository
	zoneOnce sync.Once
)

func Zone() *ZoneRepository {
	zoneOnce.Do(func() {
		zoneRepo = &ZoneRepository{db: database.DB()}
	})
	return zoneRepo
}

func (r *ZoneRepository) Create(ctx context.Context, zone *model.RestrictedZone) error {
	return r.db.WithContext(ctx).Create(zone).Error
}

func (r *ZoneRepository) GetByPublicID(ctx context.Context, publicID int64) (*model.RestrictedZone, error) {
	var zone model.RestrictedZone
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&zone).Error
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

// List 列出区域，activeOnly 为 true 时只取生效中的
func (r *ZoneRepository) List(ctx context.Context, activeOnly bool) ([]model.RestrictedZone, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if activeOnly {
		q = q.Where("active = true")
	}

	var zones []model.RestrictedZone
	err := q.Find(&zones).Error
	return zones, err
}

func (r *ZoneRepository) Updates(ctx context.Context, publicID int64, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.RestrictedZone{}).
		Where("public_id = ?", publicID).
		Updates(updates).Error
}

func (r *ZoneRepository) Deactivate(ctx context.Context, publicID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.RestrictedZone{}).
		Where("public_id = ?", publicID).
		Update("active", false).Error
}

// ListExpired 拉取已过期但仍标记生效的区域，供过期巡检使用
func (r *ZoneRepository) ListExpired(ctx context.Context, now time.Time) ([]model.RestrictedZone, error) {
	var zones []model.RestrictedZone
	err := r.db.WithContext(ctx).
		Where("active = true AND expires_at IS NOT NULL AND expires_at < ?", now).
		Find(&zones).Error
	return zones, err
}

func (r *ZoneRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RestrictedZone{}).
		Where("active = true").
		Count(&count).Error
	return count, err
}
