package repository

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"TourWatch/internal/model"
	"TourWatch/storage/database"
)

type LocationRepository struct {
	db *gorm.DB
}

var (
	locationRepo *LocationRepository
	locationOnce sync.Once
)

func Location() *LocationRepository {
	locationOnce.Do(func() {
		locationRepo = &LocationRepository{db: database.DB()}
	})
	return locationRepo
}

func (r *LocationRepository) Create(ctx context.Context, log *model.LocationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// ListSince 拉取时间窗内的全部位置记录，供最新位置归并使用
func (r *LocationRepository) ListSince(ctx context.Context, since time.Time) ([]model.LocationLog, error) {
	var logs []model.LocationLog
	err := r.db.WithContext(ctx).
		Where("recorded_at >= ?", since).
		Find(&logs).Error
	return logs, err
}

// ListByTourist 按游客拉取位置记录，since 为零值时不限制时间
func (r *LocationRepository) ListByTourist(ctx context.Context, touristPublicID int64, since time.Time, limit int) ([]model.LocationLog, error) {
	q := r.db.WithContext(ctx).
		Where("tourist_public_id = ?", touristPublicID).
		Order("recorded_at DESC")

	if !since.IsZero() {
		q = q.Where("recorded_at >= ?", since)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var logs []model.LocationLog
	err := q.Find(&logs).Error
	return logs, err
}

// LatestByTourist 单个游客的最新一条位置
func (r *LocationRepository) LatestByTourist(ctx context.Context, touristPublicID int64) (*model.LocationLog, error) {
	var log model.LocationLog
	err := r.db.WithContext(ctx).
		Where("tourist_public_id = ?", touristPublicID).
		Order("recorded_at DESC").
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}
