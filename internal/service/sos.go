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

type SosService struct{}

var (
	sosService *SosService
	sosSvcOnce sync.Once
)

func Sos() *SosService {
	sosSvcOnce.Do(func() {
		sosService = &SosService{}
	})
	return sosService
}

// Create SOS 告警上报
func (s *SosService) Create(ctx context.Context, req dto.CreateSosAlertRequest) (*dto.SosAlertItem, error) {
	touristID, err := ParseTouristID(req.TouristID)
	if err != nil {
		return nil, err
	}

	alertType := model.SosType(strings.ToLower(req.Type))
	if !model.ValidSosType(alertType) {
		return nil, pkgerrors.SosTypeInvalid
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

	severity := req.Severity
	if severity < 1 || severity > 5 {
		severity = 3
	}

	alert := &model.SosAlert{
		PublicID:        publicID,
		TouristPublicID: touristID,
		Type:            alertType,
		Message:         req.Message,
		Severity:        severity,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
	}

	if err := repository.Sos().Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to create sos alert: %w", err)
	}

	queue.PublishChangeEvent(queue.TableSosAlerts, queue.ChangeOpInsert, publicID)

	logger.Logger.Warn("SOS alert received",
		zap.Int64("public_id", publicID),
		zap.Int64("tourist_public_id", touristID),
		zap.String("type", string(alertType)),
		zap.Int("severity", severity),
	)

	item := sosItem(alert, tourist.Name)
	return &item, nil
}

// List 告警列表
func (s *SosService) List(ctx context.Context, unreadOnly bool, opts view.ListOptions) ([]dto.SosAlertItem, error) {
	alerts, err := repository.Sos().List(ctx, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list sos alerts: %w", err)
	}

	ids := make([]int64, 0, len(alerts))
	for _, a := range alerts {
		ids = append(ids, a.TouristPublicID)
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

	filtered, err := view.Apply(alerts, opts, func(a model.SosAlert) view.Fields {
		return view.Fields{
			Status:     string(a.Type), // SOS 列表按类型过滤
			Name:       name(a.TouristPublicID),
			SearchText: []string{a.Message, name(a.TouristPublicID), strconv.FormatInt(a.PublicID, 10)},
			CreatedAt:  a.CreatedAt,
		}
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.SosAlertItem, 0, len(filtered))
	for i := range filtered {
		items = append(items, sosItem(&filtered[i], name(filtered[i].TouristPublicID)))
	}
	return items, nil
}

// MarkRead 标记已读
func (s *SosService) MarkRead(ctx context.Context, publicID int64) error {
	if _, err := s.mustGet(ctx, publicID); err != nil {
		return err
	}

	if err := repository.Sos().MarkRead(ctx, publicID); err != nil {
		return fmt.Errorf("failed to mark sos alert read: %w", err)
	}

	queue.PublishChangeEvent(queue.TableSosAlerts, queue.ChangeOpUpdate, publicID)
	return nil
}

// Resolve 处理告警并触发联系人通知任务
func (s *SosService) Resolve(ctx context.Context, publicID int64) error {
	alert, err := s.mustGet(ctx, publicID)
	if err != nil {
		return err
	}

	if alert.ResolvedAt != nil {
		return pkgerrors.SosAlreadyResolved
	}

	if err := repository.Sos().Resolve(ctx, publicID, time.Now()); err != nil {
		return fmt.Errorf("failed to resolve sos alert: %w", err)
	}

	queue.PublishChangeEvent(queue.TableSosAlerts, queue.ChangeOpUpdate, publicID)

	// 通知紧急联系人由 worker 异步完成
	if err := queue.PublishSosNotify(queue.SosNotifyMessage{
		AlertPublicID:   publicID,
		TouristPublicID: alert.TouristPublicID,
		Reason:          "resolved_notify",
	}); err != nil {
		logger.Logger.Error("Failed to enqueue sos notify task",
			zap.Int64("alert_public_id", publicID),
			zap.Error(err),
		)
	}

	return nil
}

func (s *SosService) mustGet(ctx context.Context, publicID int64) (*model.SosAlert, error) {
	alert, err := repository.Sos().GetByPublicID(ctx, publicID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.SosAlertNotFound
		}
		return nil, fmt.Errorf("failed to query sos alert: %w", err)
	}
	return alert, nil
}

func sosItem(a *model.SosAlert, touristName string) dto.SosAlertItem {
	return dto.SosAlertItem{
		ID:          strconv.FormatInt(a.PublicID, 10),
		TouristID:   strconv.FormatInt(a.TouristPublicID, 10),
		TouristName: touristName,
		Type:        string(a.Type),
		Message:     a.Message,
		Severity:    a.Severity,
		Latitude:    a.Latitude,
		Longitude:   a.Longitude,
		IsRead:      a.IsRead,
		CreatedAt:   a.CreatedAt,
		ResolvedAt:  a.ResolvedAt,
	}
}
