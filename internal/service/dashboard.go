package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"TourWatch/config"
	"TourWatch/internal/cache"
	"TourWatch/internal/model"
	"TourWatch/internal/model/dto"
	"TourWatch/internal/queue"
	"TourWatch/internal/repository"
	"TourWatch/internal/view"
	"TourWatch/pkg/logger"
)

type DashboardService struct{}

var (
	dashboardService *DashboardService
	dashboardOnce    sync.Once
)

func Dashboard() *DashboardService {
	dashboardOnce.Do(func() {
		dashboardService = &DashboardService{}
	})
	return dashboardService
}

// Overview 大屏总览统计：几百行数据的内存聚合，redis 短缓存兜住刷新风暴
func (s *DashboardService) Overview(ctx context.Context) (*dto.OverviewResponse, error) {
	if cached, err := cache.GetOverview(ctx); err != nil {
		logger.Logger.Warn("Failed to read overview cache", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	overview, err := s.buildOverview(ctx)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(config.Cfg.OverviewCacheSeconds) * time.Second
	if err := cache.SetOverview(ctx, overview, ttl); err != nil {
		logger.Logger.Warn("Failed to write overview cache", zap.Error(err))
	}

	return overview, nil
}

func (s *DashboardService) buildOverview(ctx context.Context) (*dto.OverviewResponse, error) {
	activeTourists, err := repository.Tourist().CountByStatus(ctx, model.TouristStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count active tourists: %w", err)
	}

	incidentsByStatus, err := repository.Incident().CountGroupByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count incidents: %w", err)
	}

	unreadSos, err := repository.Sos().CountUnread(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread sos alerts: %w", err)
	}

	sosBySeverity, err := repository.Sos().CountGroupBySeverity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count sos alerts by severity: %w", err)
	}

	efirsByStatus, err := repository.EFir().CountGroupByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count efirs: %w", err)
	}

	activeZones, err := repository.Zone().CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active zones: %w", err)
	}

	positions, err := Location().LatestPositions(ctx)
	if err != nil {
		return nil, err
	}

	overview := &dto.OverviewResponse{
		ActiveTourists:    activeTourists,
		IncidentsByStatus: incidentsByStatus,
		UnreadSosAlerts:   unreadSos,
		SosBySeverity:     sosBySeverity,
		EFirsByStatus:     efirsByStatus,
		ActiveZones:       activeZones,
		GeneratedAt:       time.Now(),
	}

	for _, p := range positions {
		switch view.Classification(p.Classification) {
		case view.ClassificationRestricted:
			overview.RestrictedCount++
		case view.ClassificationStale:
			overview.StaleCount++
		default:
			overview.SafeCount++
		}
	}

	return overview, nil
}

// TableSnapshot 实时刷新控制器的全量拉取入口，按表名路由到对应列表
func (s *DashboardService) TableSnapshot(ctx context.Context, table string) (interface{}, error) {
	switch table {
	case queue.TableIncidents:
		return Incident().List(ctx, view.ListOptions{SortKey: view.SortKeyCreatedAt, Descending: true})
	case queue.TableSosAlerts:
		return Sos().List(ctx, false, view.ListOptions{SortKey: view.SortKeyCreatedAt, Descending: true})
	case queue.TableLocationLogs:
		return Location().LatestPositions(ctx)
	case queue.TableEFirs:
		return EFir().List(ctx, view.ListOptions{SortKey: view.SortKeyCreatedAt, Descending: true})
	case queue.TableRestrictedZones:
		return Zone().List(ctx, false, view.ListOptions{SortKey: view.SortKeyCreatedAt, Descending: true})
	case queue.TableTourists:
		return Tourist().List(ctx, view.ListOptions{SortKey: view.SortKeyCreatedAt, Descending: true})
	default:
		return nil, fmt.Errorf("unknown table: %s", table)
	}
}
