package schedule

// 区域清扫器：定期扫描已过期但仍在用的限制区域并下线
// 下线后发表变更事件，让大屏地图及时撤掉围栏

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"TourWatch/internal/queue"
	"TourWatch/internal/repository"
	"TourWatch/pkg/logger"
)

var (
	zoneSweeperOnce sync.Once
	zoneSweeperInst *ZoneSweeper
)

// ZoneSweeper 过期区域清扫器
type ZoneSweeper struct {
	logger        *zap.Logger
	sweepRunning  bool
	sweepMu       sync.Mutex
	lastSweepTime time.Time
}

// GetZoneSweeper 获取清扫器单例
func GetZoneSweeper() *ZoneSweeper {
	zoneSweeperOnce.Do(func() {
		zoneSweeperInst = &ZoneSweeper{
			logger: logger.Logger,
		}
	})
	return zoneSweeperInst
}

// SweepExpiredZones 下线所有已过期的在用区域（定时任务调用）
func (s *ZoneSweeper) SweepExpiredZones(ctx context.Context) error {
	s.sweepMu.Lock()
	if s.sweepRunning {
		s.sweepMu.Unlock()
		s.logger.Info("Zone sweep already running, skipping")
		return nil
	}
	s.sweepRunning = true
	s.sweepMu.Unlock()

	defer func() {
		s.sweepMu.Lock()
		s.sweepRunning = false
		s.sweepMu.Unlock()
	}()

	now := time.Now()
	s.lastSweepTime = now

	zones, err := repository.Zone().ListExpired(ctx, now)
	if err != nil {
		s.logger.Error("Failed to query expired zones", zap.Error(err))
		return fmt.Errorf("failed to query expired zones: %w", err)
	}

	if len(zones) == 0 {
		return nil
	}

	s.logger.Info("Found expired zones to deactivate",
		zap.Int("zone_count", len(zones)),
	)

	var swept int
	for i := range zones {
		zone := &zones[i]

		if err := repository.Zone().Deactivate(ctx, zone.PublicID); err != nil {
			s.logger.Error("Failed to deactivate expired zone",
				zap.Int64("public_id", zone.PublicID),
				zap.String("name", zone.Name),
				zap.Error(err),
			)
			continue
		}

		queue.PublishChangeEvent(queue.TableRestrictedZones, queue.ChangeOpUpdate, zone.PublicID)
		swept++

		s.logger.Info("Expired zone deactivated",
			zap.Int64("public_id", zone.PublicID),
			zap.String("name", zone.Name),
			zap.Timep("expires_at", zone.ExpiresAt),
		)
	}

	s.logger.Info("Zone sweep finished",
		zap.Int("swept", swept),
		zap.Int("total", len(zones)),
		zap.Duration("elapsed", time.Since(now)),
	)

	return nil
}
