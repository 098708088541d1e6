package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
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

type IncidentService struct{}

var (
	incidentService *IncidentService
	incidentSvcOnce sync.Once
)

func Incident() *IncidentService {
	incidentSvcOnce.Do(func() {
		incidentService = &IncidentService{}
	})
	return incidentService
}

// CanTransitionIncident 事件状态机：resolved 是终态，其余状态间随意切换
func CanTransitionIncident(from, to model.IncidentStatus) error {
	if !model.ValidIncidentStatus(to) {
		return pkgerrors.IncidentStatusInvalid
	}
	if from == model.IncidentStatusResolved {
		return pkgerrors.IncidentResolved
	}
	return nil
}

// Create 上报事件
func (s *IncidentService) Create(ctx context.Context, req dto.CreateIncidentRequest) (*dto.IncidentItem, error) {
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

	incident := &model.Incident{
		PublicID:        publicID,
		TouristPublicID: touristID,
		Description:     req.Description,
		Status:          model.IncidentStatusPending,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
	}

	if err := repository.Incident().Create(ctx, incident); err != nil {
		return nil, fmt.Errorf("failed to create incident: %w", err)
	}

	queue.PublishChangeEvent(queue.TableIncidents, queue.ChangeOpInsert, publicID)

	logger.Logger.Info("Incident reported",
		zap.Int64("public_id", publicID),
		zap.Int64("tourist_public_id", touristID),
	)

	item := incidentItem(incident, tourist.Name)
	return &item, nil
}

// List 事件列表，内存过滤排序，游客名缺失时用占位符
func (s *IncidentService) List(ctx context.Context, opts view.ListOptions) ([]dto.IncidentItem, error) {
	incidents, err := repository.Incident().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}

	names, err := s.touristNames(ctx, incidents)
	if err != nil {
		return nil, err
	}

	filtered, err := view.Apply(incidents, opts, func(inc model.Incident) view.Fields {
		return view.Fields{
			Status:     string(inc.Status),
			Name:       names[inc.TouristPublicID],
			SearchText: []string{inc.Description, names[inc.TouristPublicID], strconv.FormatInt(inc.PublicID, 10)},
			CreatedAt:  inc.CreatedAt,
		}
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.IncidentItem, 0, len(filtered))
	for i := range filtered {
		items = append(items, incidentItem(&filtered[i], names[filtered[i].TouristPublicID]))
	}
	return items, nil
}

// Get 单个事件
func (s *IncidentService) Get(ctx context.Context, publicID int64) (*dto.IncidentItem, error) {
	incident, err := repository.Incident().GetByPublicID(ctx, publicID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.IncidentNotFound
		}
		return nil, fmt.Errorf("failed to query incident: %w", err)
	}

	name := "Unknown Tourist"
	if tourist, err := repository.Tourist().GetByPublicID(ctx, incident.TouristPublicID); err == nil {
		name = tourist.Name
	}

	item := incidentItem(incident, name)
	return &item, nil
}

// UpdateStatus 状态流转，resolved 为终态
func (s *IncidentService) UpdateStatus(ctx context.Context, publicID int64, status string) (*dto.IncidentItem, error) {
	incident, err := repository.Incident().GetByPublicID(ctx, publicID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.IncidentNotFound
		}
		return nil, fmt.Errorf("failed to query incident: %w", err)
	}

	// 入口统一小写，之后精确比较
	target := model.IncidentStatus(strings.ToLower(status))
	if err := CanTransitionIncident(incident.Status, target); err != nil {
		return nil, err
	}

	var resolvedAt *time.Time
	if target == model.IncidentStatusResolved {
		now := time.Now()
		resolvedAt = &now
	}

	if err := repository.Incident().UpdateStatus(ctx, publicID, target, resolvedAt); err != nil {
		return nil, fmt.Errorf("failed to update incident status: %w", err)
	}

	queue.PublishChangeEvent(queue.TableIncidents, queue.ChangeOpUpdate, publicID)

	incident.Status = target
	incident.ResolvedAt = resolvedAt
	return s.Get(ctx, publicID)
}

func (s *IncidentService) touristNames(ctx context.Context, incidents []model.Incident) (map[int64]string, error) {
	ids := make([]int64, 0, len(incidents))
	for _, inc := range incidents {
		ids = append(ids, inc.TouristPublicID)
	}

	tourists, err := repository.Tourist().ListByPublicIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load tourists: %w", err)
	}

	names := make(map[int64]string, len(incidents))
	for _, inc := range incidents {
		if t, ok := tourists[inc.TouristPublicID]; ok {
			names[inc.TouristPublicID] = t.Name
		} else {
			names[inc.TouristPublicID] = "Unknown Tourist"
		}
	}
	return names, nil
}

func incidentItem(inc *model.Incident, touristName string) dto.IncidentItem {
	return dto.IncidentItem{
		ID:          strconv.FormatInt(inc.PublicID, 10),
		TouristID:   strconv.FormatInt(inc.TouristPublicID, 10),
		TouristName: touristName,
		Description: inc.Description,
		Status:      string(inc.Status),
		Latitude:    inc.Latitude,
		Longitude:   inc.Longitude,
		CreatedAt:   inc.CreatedAt,
		ResolvedAt:  inc.ResolvedAt,
	}
}
