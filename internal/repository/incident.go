package repository

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"TourWatch/internal/model"
	"TourWatch/storage/database"
)

type IncidentRepository struct {
	db *gorm.DB
}

var (
	incidentRepo *IncidentRepository
	incidentOnce sync.Once
)

func Incident() *IncidentRepository {
	incidentOnce.Do(func() {
		incidentRepo = &IncidentRepository{db: database.DB()}
	})
	return incidentRepo
}

func (r *IncidentRepository) Create(ctx context.Context, incident *model.Incident) error {
	return r.db.WithContext(ctx).Create(incident).Error
}

func (r *IncidentRepository) GetByPublicID(ctx context.Context, publicID int64) (*model.Incident, error) {
	var inc model.Incident
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&inc).Error
	if err != nil {
		return nil, err
	}
	return &inc, nil
}

func (r *IncidentRepository) List(ctx context.Context) ([]model.Incident, error) {
	var incidents []model.Incident
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&incidents).Error
	return incidents, err
}

func (r *IncidentRepository) UpdateStatus(ctx context.Context, publicID int64, status model.IncidentStatus, resolvedAt *time.Time) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if resolvedAt != nil {
		updates["resolved_at"] = resolvedAt
	}

	return r.db.WithContext(ctx).
		Model(&model.Incident{}).
		Where("public_id = ?", publicID).
		Updates(updates).Error
}

func (r *IncidentRepository) CountByTourist(ctx context.Context, touristPublicID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Incident{}).
		Where("tourist_public_id = ?", touristPublicID).
		Count(&count).Error
	return count, err
}

// CountGroupByStatus 按状态统计事件数量，供大屏总览使用
func (r *IncidentRepository) CountGroupByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Incident{}).
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
