package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"TourWatch/config"
	"TourWatch/internal/queue"
	"TourWatch/pkg/logger"
	"TourWatch/pkg/sms"
	"TourWatch/pkg/snowflake"
	"TourWatch/storage"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	// SMS 不可用时 worker 照常起，联系人通知会走重试
	if err := sms.Init(); err != nil {
		logger.Logger.Warn("Failed to initialize SMS service", zap.Error(err))
		logger.Logger.Info("SMS service will be disabled, contact notification may not work")
	}

	logger.Logger.Info("Worker service starting",
		zap.String("service", "tourwatch-worker"),
		zap.String("environment", config.Cfg.Environment),
	)

	// 消费循环阻塞在 MQ channel 上，放到单独 goroutine，
	// 收到关闭信号后由 storage.Close 关连接让它退出
	go func() {
		if err := queue.StartSosNotifyConsumer(ctx); err != nil {
			logger.Logger.Error("SOS notify consumer stopped", zap.Error(err))
		}
		cancel()
	}()

	<-ctx.Done()

	logger.Logger.Info("Worker service shutting down gracefully")
}
