package repository

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"TourWatch/internal/model"
	"TourWatch/storage/database"
)

type OperatorRepository struct {
	db *gorm.DB
}

var (
	operatorRepo *OperatorRepository
	operatorOnce sync.Once
)

func Operator() *OperatorRepository {
	operatorOnce.Do(func() {
		operatorRepo = &OperatorRepository{db: database.DB()}
	})
	return operatorRepo
}

func (r *OperatorRepository) GetByEmail(ctx context.Context, email string) (*model.Operator, error) {
	var op model.Operator
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&op).Error
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *OperatorRepository) GetByPublicID(ctx context.Context, publicID int64) (*model.Operator, error) {
	var op model.Operator
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&op).Error
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *OperatorRepository) Create(ctx context.Context, op *model.Operator) error {
	return r.db.WithContext(ctx).Create(op).Error
}
