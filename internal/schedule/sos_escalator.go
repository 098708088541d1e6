package schedule

// SOS 升级器：告警超过配置时长仍无人读时，升级为联系人短信通知
// redis SETNX 标记保证每条告警只升级一次

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"TourWatch/config"
	"TourWatch/internal/cache"
	"TourWatch/internal/queue"
	"TourWatch/internal/repository"
	"TourWatch/pkg/logger"
)

var (
	sosEscalatorOnce sync.Once
	sosEscalatorInst *SosEscalator
)

// SosEscalator 未读告警升级器
type SosEscalator struct {
	logger           *zap.Logger
	escalateRunning  bool
	escalateMu       sync.Mutex
	lastEscalateTime time.Time
}

// GetSosEscalator 获取升级器单例
func GetSosEscalator() *SosEscalator {
	sosEscalatorOnce.Do(func() {
		sosEscalatorInst = &SosEscalator{
			logger: logger.Logger,
		}
	})
	return sosEscalatorInst
}

// EscalateUnreadAlerts 扫描超时未读的告警并投递联系人通知任务（定时任务调用）
func (s *SosEscalator) EscalateUnreadAlerts(ctx context.Context) error {
	s.escalateMu.Lock()
	if s.escalateRunning {
		s.escalateMu.Unlock()
		s.logger.Info("SOS escalation already running, skipping")
		return nil
	}
	s.escalateRunning = true
	s.escalateMu.Unlock()

	defer func() {
		s.escalateMu.Lock()
		s.escalateRunning = false
		s.escalateMu.Unlock()
	}()

	now := time.Now()
	s.lastEscalateTime = now

	threshold := time.Duration(config.Cfg.SosEscalateMinutes) * time.Minute
	before := now.Add(-threshold)

	alerts, err := repository.Sos().ListUnreadBefore(ctx, before)
	if err != nil {
		s.logger.Error("Failed to query unread SOS alerts", zap.Error(err))
		return fmt.Errorf("failed to query unread sos alerts: %w", err)
	}

	if len(alerts) == 0 {
		return nil
	}

	s.logger.Warn("Found unread SOS alerts past escalation threshold",
		zap.Int("alert_count", len(alerts)),
		zap.Duration("threshold", threshold),
	)

	var escalated int
	for i := range alerts {
		alert := &alerts[i]

		// 每条告警只升级一次
		first, err := cache.TryMarkSosEscalated(ctx, alert.PublicID)
		if err != nil {
			s.logger.Error("Failed to mark alert escalated",
				zap.Int64("public_id", alert.PublicID),
				zap.Error(err),
			)
			continue
		}
		if !first {
			continue
		}

		if err := queue.PublishSosNotify(queue.SosNotifyMessage{
			AlertPublicID:   alert.PublicID,
			TouristPublicID: alert.TouristPublicID,
			Reason:          "escalation",
		}); err != nil {
			s.logger.Error("Failed to publish escalation notify",
				zap.Int64("public_id", alert.PublicID),
				zap.Error(err),
			)
			continue
		}

		escalated++
		s.logger.Warn("SOS alert escalated to emergency contact",
			zap.Int64("public_id", alert.PublicID),
			zap.Int64("tourist_public_id", alert.TouristPublicID),
			zap.Time("created_at", alert.CreatedAt),
		)
	}

	s.logger.Info("SOS escalation finished",
		zap.Int("escalated", escalated),
		zap.Int("total", len(alerts)),
		zap.Duration("elapsed", time.Since(now)),
	)

	return nil
}
