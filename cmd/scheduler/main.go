package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"TourWatch/config"
	"TourWatch/internal/schedule"
	"TourWatch/pkg/logger"
	"TourWatch/pkg/snowflake"
	"TourWatch/storage"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Logger.Info("Scheduler received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage for scheduler", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake for scheduler", zap.Error(err))
	}

	logger.Logger.Info("Scheduler service starting",
		zap.String("service", "tourwatch-scheduler"),
		zap.String("environment", config.Cfg.Environment),
	)

	go runZoneSweepLoop(ctx)
	go runSosEscalateLoop(ctx)

	<-ctx.Done()

	logger.Logger.Info("Scheduler service shutting down gracefully")
}

// runZoneSweepLoop 周期性下线已过期的限制区域
// 当前实现：每 5 分钟扫描一次
func runZoneSweepLoop(ctx context.Context) {
	sweeper := schedule.GetZoneSweeper()

	interval := 5 * time.Minute
	if config.Cfg.Environment == "development" {
		interval = 1 * time.Minute
		logger.Logger.Info("Zone sweep loop running in development mode with 1m interval")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			if err := sweeper.SweepExpiredZones(runCtx); err != nil {
				logger.Logger.Error("Zone sweep run failed", zap.Error(err))
			}
			cancel()
		}
	}
}

// runSosEscalateLoop 周期性升级超时未读的 SOS 告警
// 扫描间隔取升级阈值的一半，保证升级延迟不超过阈值的 1.5 倍
func runSosEscalateLoop(ctx context.Context) {
	escalator := schedule.GetSosEscalator()

	interval := time.Duration(config.Cfg.SosEscalateMinutes) * time.Minute / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	if config.Cfg.Environment == "development" {
		interval = 30 * time.Second
		logger.Logger.Info("SOS escalate loop running in development mode with 30s interval")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			if err := escalator.EscalateUnreadAlerts(runCtx); err != nil {
				logger.Logger.Error("SOS escalation run failed", zap.Error(err))
			}
			cancel()
		}
	}
}
