package repository

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"TourWatch/internal/model"
	"TourWatch/storage/database"
)

type TouristRepository struct {
	db *gorm.DB
}

var (
	touristRepo *TouristRepository
	touristOnce sync.Once
)

func Tourist() *TouristRepository {
	touristOnce.Do(func() {
		touristRepo = &TouristRepository{db: database.DB()}
	})
	return touristRepo
}

func (r *TouristRepository) Create(ctx context.Context, tourist *model.Tourist) error {
	return r.db.WithContext(ctx).Create(tourist).Error
}

func (r *TouristRepository) GetByPublicID(ctx context.Context, publicID int64) (*model.Tourist, error) {
	var t model.Tourist
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByDocumentHash 按证件号哈希查重
func (r *TouristRepository) GetByDocumentHash(ctx context.Context, hash string) (*model.Tourist, error) {
	var t model.Tourist
	err := r.db.WithContext(ctx).Where("document_hash = ?", hash).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TouristRepository) List(ctx context.Context) ([]model.Tourist, error) {
	var tourists []model.Tourist
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tourists).Error
	return tourists, err
}

// ListByPublicIDs 按 public_id 批量取游客，用于列表视图补游客名
func (r *TouristRepository) ListByPublicIDs(ctx context.Context, publicIDs []int64) (map[int64]model.Tourist, error) {
	if len(publicIDs) == 0 {
		return map[int64]model.Tourist{}, nil
	}

	var tourists []model.Tourist
	err := r.db.WithContext(ctx).Where("public_id IN ?", publicIDs).Find(&tourists).Error
	if err != nil {
		return nil, err
	}

	out := make(map[int64]model.Tourist, len(tourists))
	for _, t := range tourists {
		out[t.PublicID] = t
	}
	return out, nil
}

func (r *TouristRepository) UpdateStatus(ctx context.Context, publicID int64, status model.TouristStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Tourist{}).
		Where("public_id = ?", publicID).
		Update("status", status).Error
}

func (r *TouristRepository) CountByStatus(ctx context.Context, status model.TouristStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Tourist{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
