package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"gorm.io/gorm"

	"TourWatch/config"
	"TourWatch/internal/model"
	"TourWatch/internal/model/dto"
	"TourWatch/internal/queue"
	"TourWatch/internal/repository"
	"TourWatch/internal/view"
	pkgerrors "TourWatch/pkg/errors"
	"TourWatch/pkg/snowflake"
)

type LocationService struct{}

var (
	locationService *LocationService
	locationSvcOnce sync.Once
)

func Location() *LocationService {
	locationSvcOnce.Do(func() {
		locationService = &LocationService{}
	})
	return locationService
}

// Ingest 位置上报，只追加。坐标不校验，脏数据原样入库透传。
func (s *LocationService) Ingest(ctx context.Context, req dto.IngestLocationRequest) (*dto.LocationItem, error) {
	touristID, err := ParseTouristID(req.TouristID)
	if err != nil {
		return nil, err
	}

	if _, err := repository.Tourist().GetByPublicID(ctx, touristID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.TouristNotFound
		}
		return nil, fmt.Errorf("failed to query tourist: %w", err)
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate public id: %w", err)
	}

	recordedAt := req.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	log := &model.LocationLog{
		PublicID:         publicID,
		TouristPublicID:  touristID,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Accuracy:         req.Accuracy,
		Address:          req.Address,
		InRestrictedZone: req.InRestrictedZone,
		RecordedAt:       recordedAt,
	}

	if err := repository.Location().Create(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to create location log: %w", err)
	}

	queue.PublishChangeEvent(queue.TableLocationLogs, queue.ChangeOpInsert, publicID)

	item := locationItem(log)
	return &item, nil
}

// ListByTourist 单个游客的位置轨迹
func (s *LocationService) ListByTourist(ctx context.Context, touristPublicID int64, since time.Time, limit int) ([]dto.LocationItem, error) {
	if _, err := repository.Tourist().GetByPublicID(ctx, touristPublicID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.TouristNotFound
		}
		return nil, fmt.Errorf("failed to query tourist: %w", err)
	}

	logs, err := repository.Location().ListByTourist(ctx, touristPublicID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	items := make([]dto.LocationItem, 0, len(logs))
	for i := range logs {
		items = append(items, locationItem(&logs[i]))
	}
	return items, nil
}

// LatestPositions 大屏最新位置视图：时间窗内全量拉取 + 归并 + 分类，补游客名。
// 游客已删除的记录用 "Unknown Tourist" 占位，不报错。
func (s *LocationService) LatestPositions(ctx context.Context) ([]dto.LatestPositionItem, error) {
	cfg := config.Cfg
	window := time.Duration(cfg.LocationWindowHours) * time.Hour
	staleAfter := time.Duration(cfg.StaleThresholdHours) * time.Hour

	logs, err := repository.Location().ListSince(ctx, time.Now().Add(-window))
	if err != nil {
		return nil, fmt.Errorf("failed to list location logs: %w", err)
	}

	positions := view.LatestPositions(logs, time.Now(), staleAfter)

	touristIDs := make([]int64, 0, len(positions))
	for _, p := range positions {
		touristIDs = append(touristIDs, p.Log.TouristPublicID)
	}

	tourists, err := repository.Tourist().ListByPublicIDs(ctx, touristIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load tourists: %w", err)
	}

	items := make([]dto.LatestPositionItem, 0, len(positions))
	for _, p := range positions {
		name := "Unknown Tourist"
		if t, ok := tourists[p.Log.TouristPublicID]; ok {
			name = t.Name
		}

		items = append(items, dto.LatestPositionItem{
			TouristID:        strconv.FormatInt(p.Log.TouristPublicID, 10),
			TouristName:      name,
			Latitude:         p.Log.Latitude,
			Longitude:        p.Log.Longitude,
			Address:          p.Log.Address,
			InRestrictedZone: p.Log.InRestrictedZone,
			RecordedAt:       p.Log.RecordedAt,
			Classification:   string(p.Classification),
		})
	}

	return items, nil
}

func locationItem(log *model.LocationLog) dto.LocationItem {
	return dto.LocationItem{
		ID:               strconv.FormatInt(log.PublicID, 10),
		TouristID:        strconv.FormatInt(log.TouristPublicID, 10),
		Latitude:         log.Latitude,
		Longitude:        log.Longitude,
		Accuracy:         log.Accuracy,
		Address:          log.Address,
		InRestrictedZone: log.InRestrictedZone,
		RecordedAt:       log.RecordedAt,
	}
}
