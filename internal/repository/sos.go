package repository

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"TourWatch/internal/model"
	"TourWatch/storage/database"
)

type SosRepository struct {
	db *gorm.DB
}

var (
	sosRepo *SosRepository
	sosOnce sync.Once
)

func Sos() *SosRepository {
	sosOnce.Do(func() {
		sosRepo = &SosRepository{db: database.DB()}
	})
	return sosRepo
}

func (r *SosRepository) Create(ctx context.Context, alert *model.SosAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *SosRepository) GetByPublicID(ctx context.Context, publicID int64) (*model.SosAlert, error) {
	var alert model.SosAlert
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&alert).Error
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *SosRepository) List(ctx context.Context, unreadOnly bool) ([]model.SosAlert, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if unreadOnly {
		q = q.Where("is_read = false")
	}

	var alerts []model.SosAlert
	err := q.Find(&alerts).Error
	return alerts, err
}

func (r *SosRepository) MarkRead(ctx context.Context, publicID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.SosAlert{}).
		Where("public_id = ?", publicID).
		Update("is_read", true).Error
}

func (r *SosRepository) Resolve(ctx context.Context, publicID int64, resolvedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.SosAlert{}).
		Where("public_id = ?", publicID).
		Updates(map[string]interface{}{
			"is_read":     true,
			"resolved_at": resolvedAt,
		}).Error
}

// ListUnreadBefore 拉取指定时刻前创建且未读未处理的告警，供升级巡检使用
func (r *SosRepository) ListUnreadBefore(ctx context.Context, before time.Time) ([]model.SosAlert, error) {
	var alerts []model.SosAlert
	err := r.db.WithContext(ctx).
		Where("is_read = false AND resolved_at IS NULL AND created_at < ?", before).
		Find(&alerts).Error
	return alerts, err
}

func (r *SosRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SosAlert{}).
		Where("is_read = false").
		Count(&count).Error
	return count, err
}

func (r *SosRepository) CountByTourist(ctx context.Context, touristPublicID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SosAlert{}).
		Where("tourist_public_id = ?", touristPublicID).
		Count(&count).Error
	return count, err
}

// CountGroupBySeverity 按严重级别统计，供大屏总览使用
func (r *SosRepository) CountGroupBySeverity(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Severity string
		Count    int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.SosAlert{}).
		Select("severity::text as severity, count(*) as count").
		Group("severity").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Severity] = r.Count
	}
	return out, nil
}
