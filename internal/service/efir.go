package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"TourWatch/internal/model"
	"TourWatch/internal/model/dto"
	"TourWatch/internal/queue"
	"TourWatch/internal/repository"
	"TourWatch/internal/view"
	pkgerrors "TourWatch/pkg/errors"
	"TourWatch/pkg/logger"
	"TourWatch/pkg/snowflake"
)

type EFirService struct{}

var (
	efirService *EFirService
	efirSvcOnce sync.Once
)

func EFir() *EFirService {
	efirSvcOnce.Do(func() {
		efirService = &EFirService{}
	})
	return efirService
}

// CanTransitionEFir 报案单状态机：只能逐级向前，pending 直接到 resolved 也不行
func CanTransitionEFir(from, to model.EFirStatus) error {
	if !model.ValidEFirStatus(to) {
		return pkgerrors.EFirStatusInvalid
	}

	switch from {
	case model.EFirStatusPending:
		if to == model.EFirStatusFiled {
			return nil
		}
	case model.EFirStatusFiled:
		if to == model.EFirStatusResolved {
			return nil
		}
	}
	return pkgerrors.EFirTransitionInvalid
}

// Create 生成电子报案单
func (s *EFirService) Create(ctx context.Context, req dto.CreateEFirRequest) (*dto.EFirItem, error) {
	touristID, err := ParseTouristID(req.TouristID)
	if err != nil {
		return nil, err
	}

	tourist, err := repository.Tourist().GetByPublicID(ctx, touristID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.TouristNotFound
		}
		return nil, fmt.Errorf("failed to query tourist: %w", err)
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate public id: %w", err)
	}

	efir := &model.EFir{
		PublicID:        publicID,
		TouristPublicID: touristID,
		Reason:          req.Reason,
		Status:          model.EFirStatusPending,
		GeneratedAt:     time.Now(),
	}

	if err := repository.EFir().Create(ctx, efir); err != nil {
		return nil, fmt.Errorf("failed to create efir: %w", err)
	}

	queue.PublishChangeEvent(queue.TableEFirs, queue.ChangeOpInsert, publicID)

	logger.Logger.Info("E-FIR generated",
		zap.Int64("public_id", publicID),
		zap.Int64("tourist_public_id", touristID),
	)

	item := efirItem(efir, tourist.Name)
	return &item, nil
}

// List 报案单列表
func (s *EFirService) List(ctx context.Context, opts view.ListOptions) ([]dto.EFirItem, error) {
	efirs, err := repository.EFir().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list efirs: %w", err)
	}

	ids := make([]int64, 0, len(efirs))
	for _, e := range efirs {
		ids = append(ids, e.TouristPublicID)
	}
	tourists, err := repository.Tourist().ListByPublicIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load tourists: %w", err)
	}

	name := func(touristID int64) string {
		if t, ok := tourists[touristID]; ok {
			return t.Name
		}
		return "Unknown Tourist"
	}

	filtered, err := view.Apply(efirs, opts, func(e model.EFir) view.Fields {
		return view.Fields{
			Status:     string(e.Status),
			Name:       name(e.TouristPublicID),
			SearchText: []string{e.Reason, name(e.TouristPublicID), strconv.FormatInt(e.PublicID, 10)},
			CreatedAt:  e.GeneratedAt,
		}
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.EFirItem, 0, len(filtered))
	for i := range filtered {
		items = append(items, efirItem(&filtered[i], name(filtered[i].TouristPublicID)))
	}
	return items, nil
}

// File 提交报案单 pending -> filed
func (s *EFirService) File(ctx context.Context, publicID int64) (*dto.EFirItem, error) {
	return s.transition(ctx, publicID, model.EFirStatusFiled)
}

// Resolve 了结报案单 filed -> resolved
func (s *EFirService) Resolve(ctx context.Context, publicID int64) (*dto.EFirItem, error) {
	return s.transition(ctx, publicID, model.EFirStatusResolved)
}

func (s *EFirService) transition(ctx context.Context, publicID int64, target model.EFirStatus) (*dto.EFirItem, error) {
	efir, err := repository.EFir().GetByPublicID(ctx, publicID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.EFirNotFound
		}
		return nil, fmt.Errorf("failed to query efir: %w", err)
	}

	if err := CanTransitionEFir(efir.Status, target); err != nil {
		return nil, err
	}

	now := time.Now()
	var filedAt, resolvedAt *time.Time
	switch target {
	case model.EFirStatusFiled:
		filedAt = &now
	case model.EFirStatusResolved:
		resolvedAt = &now
	}

	if err := repository.EFir().UpdateStatus(ctx, publicID, target, filedAt, resolvedAt); err != nil {
		return nil, fmt.Errorf("failed to update efir status: %w", err)
	}

	queue.PublishChangeEvent(queue.TableEFirs, queue.ChangeOpUpdate, publicID)

	efir.Status = target
	if filedAt != nil {
		efir.FiledAt = filedAt
	}
	if resolvedAt != nil {
		efir.ResolvedAt = resolvedAt
	}

	name := "Unknown Tourist"
	if tourist, err := repository.Tourist().GetByPublicID(ctx, efir.TouristPublicID); err == nil {
		name = tourist.Name
	}

	item := efirItem(efir, name)
	return &item, nil
}

func efirItem(e *model.EFir, touristName string) dto.EFirItem {
	return dto.EFirItem{
		ID:          strconv.FormatInt(e.PublicID, 10),
		TouristID:   strconv.FormatInt(e.TouristPublicID, 10),
		TouristName: touristName,
		Reason:      e.Reason,
		Status:      string(e.Status),
		GeneratedAt: e.GeneratedAt,
		FiledAt:     e.FiledAt,
		ResolvedAt:  e.ResolvedAt,
	}
}
