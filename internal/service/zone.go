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

type ZoneService struct{}

var (
	zoneService *ZoneService
	zoneSvcOnce sync.Once
)

func Zone() *ZoneService {
	zoneSvcOnce.Do(func() {
		zoneService = &ZoneService{}
	})
	return zoneService
}

// Create 标定限制区域
func (s *ZoneService) Create(ctx context.Context, req dto.CreateZoneRequest) (*dto.ZoneItem, error) {
	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate public id: %w", err)
	}

	severity := req.Severity
	if severity < 1 || severity > 5 {
		severity = 3
	}

	zone := &model.RestrictedZone{
		PublicID:    publicID,
		Name:        req.Name,
		Description: req.Description,
		Severity:    severity,
		CenterLat:   req.CenterLat,
		CenterLng:   req.CenterLng,
		RadiusM:     req.RadiusM,
		ExpiresAt:   req.ExpiresAt,
		Active:      true,
	}

	if err := repository.Zone().Create(ctx, zone); err != nil {
		return nil, fmt.Errorf("failed to create restricted zone: %w", err)
	}

	queue.PublishChangeEvent(queue.TableRestrictedZones, queue.ChangeOpInsert, publicID)

	logger.Logger.Info("Restricted zone created",
		zap.Int64("public_id", publicID),
		zap.String("name", req.Name),
		zap.Int("severity", severity),
	)

	item := zoneItem(zone)
	return &item, nil
}

// List 区域列表
func (s *ZoneService) List(ctx context.Context, activeOnly bool, opts view.ListOptions) ([]dto.ZoneItem, error) {
	zones, err := repository.Zone().List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list restricted zones: %w", err)
	}

	filtered, err := view.Apply(zones, opts, func(z model.RestrictedZone) view.Fields {
		return view.Fields{
			Name:       z.Name,
			SearchText: []string{z.Name, z.Description, strconv.FormatInt(z.PublicID, 10)},
			CreatedAt:  z.CreatedAt,
		}
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.ZoneItem, 0, len(filtered))
	for i := range filtered {
		items = append(items, zoneItem(&filtered[i]))
	}
	return items, nil
}

// Update 修改区域，已过期的区域不允许再改
func (s *ZoneService) Update(ctx context.Context, publicID int64, req dto.UpdateZoneRequest) (*dto.ZoneItem, error) {
	zone, err := s.mustGet(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if zone.ExpiresAt != nil && zone.ExpiresAt.Before(time.Now()) {
		return nil, pkgerrors.ZoneExpired
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Severity != nil && *req.Severity >= 1 && *req.Severity <= 5 {
		updates["severity"] = *req.Severity
	}
	if req.CenterLat != nil {
		updates["center_lat"] = *req.CenterLat
	}
	if req.CenterLng != nil {
		updates["center_lng"] = *req.CenterLng
	}
	if req.RadiusM != nil {
		updates["radius_m"] = *req.RadiusM
	}
	if req.ExpiresAt != nil {
		updates["expires_at"] = *req.ExpiresAt
	}

	if len(updates) > 0 {
		if err := repository.Zone().Updates(ctx, publicID, updates); err != nil {
			return nil, fmt.Errorf("failed to update restricted zone: %w", err)
		}
		queue.PublishChangeEvent(queue.TableRestrictedZones, queue.ChangeOpUpdate, publicID)
	}

	zone, err = s.mustGet(ctx, publicID)
	if err != nil {
		return nil, err
	}

	item := zoneItem(zone)
	return &item, nil
}

// Deactivate 下线区域
func (s *ZoneService) Deactivate(ctx context.Context, publicID int64) error {
	if _, err := s.mustGet(ctx, publicID); err != nil {
		return err
	}

	if err := repository.Zone().Deactivate(ctx, publicID); err != nil {
		return fmt.Errorf("failed to deactivate restricted zone: %w", err)
	}

	queue.PublishChangeEvent(queue.TableRestrictedZones, queue.ChangeOpUpdate, publicID)
	return nil
}

func (s *ZoneService) mustGet(ctx context.Context, publicID int64) (*model.RestrictedZone, error) {
	zone, err := repository.Zone().GetByPublicID(ctx, publicID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.ZoneNotFound
		}
		return nil, fmt.Errorf("failed to query restricted zone: %w", err)
	}
	return zone, nil
}

func zoneItem(z *model.RestrictedZone) dto.ZoneItem {
	return dto.ZoneItem{
		ID:          strconv.FormatInt(z.PublicID, 10),
		Name:        z.Name,
		Description: z.Description,
		Severity:    z.Severity,
		CenterLat:   z.CenterLat,
		CenterLng:   z.CenterLng,
		RadiusM:     z.RadiusM,
		ExpiresAt:   z.ExpiresAt,
		Active:      z.Active,
		CreatedAt:   z.CreatedAt,
	}
}
