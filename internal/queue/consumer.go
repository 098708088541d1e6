package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"TourWatch/config"
	"TourWatch/internal/cache"
	"TourWatch/internal/repository"
	"TourWatch/pkg/errors"
	"TourWatch/pkg/logger"
	"TourWatch/pkg/sms"
	"TourWatch/storage/mq"
	"TourWatch/utils"
)

// StartSosNotifyConsumer 启动 SOS 联系人通知消费者，阻塞直到连接关闭
func StartSosNotifyConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg SosNotifyMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			// 解析不了的消息重试也没用
			return &errors.SkipMessageError{Reason: fmt.Sprintf("malformed sos notify message: %v", err)}
		}

		// 【幂等性检查】使用 SETNX 原子性地检查并标记消息正在处理
		processed, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
			// 检查失败时继续处理，宁可重复也不丢通知
		} else if !processed {
			logger.Logger.Info("Message already processed or being processed, skipping",
				zap.String("message_id", msg.MessageID),
				zap.Int64("alert_public_id", msg.AlertPublicID),
			)
			return &errors.SkipMessageError{Reason: fmt.Sprintf("Message %s already processed", msg.MessageID)}
		}

		if err := notifyEmergencyContact(ctx, msg); err != nil {
			// 失败时取消标记，允许重试；不可重试错误原样上抛让消费框架 ack 掉
			if !errors.IsSkipMessageError(err) {
				if unmarkErr := cache.UnmarkMessageProcessing(ctx, msg.MessageID); unmarkErr != nil {
					logger.Logger.Warn("Failed to unmark message processing",
						zap.String("message_id", msg.MessageID),
						zap.Error(unmarkErr),
					)
				}
			}
			return err
		}

		if err := cache.MarkMessageProcessed(ctx, msg.MessageID, 48*time.Hour); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}

		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.SosNotifyQueue,
		ConsumerTag:   "sos_notify_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// notifyEmergencyContact 解密联系人电话并发送短信
func notifyEmergencyContact(ctx context.Context, msg SosNotifyMessage) error {
	alert, err := repository.Sos().GetByPublicID(ctx, msg.AlertPublicID)
	if err != nil {
		return fmt.Errorf("failed to load sos alert %d: %w", msg.AlertPublicID, err)
	}

	tourist, err := repository.Tourist().GetByPublicID(ctx, msg.TouristPublicID)
	if err != nil {
		return fmt.Errorf("failed to load tourist %d: %w", msg.TouristPublicID, err)
	}

	contact := tourist.EmergencyContact
	if contact.PhoneCipherBase64 == "" {
		// 没有联系人电话就没法通知，重试无意义
		return &errors.SkipMessageError{
			Reason: fmt.Sprintf("tourist %d has no emergency contact phone", msg.TouristPublicID),
		}
	}

	phone, err := utils.DecryptSensitive(contact.PhoneCipherBase64)
	if err != nil {
		return &errors.SkipMessageError{
			Reason: fmt.Sprintf("failed to decrypt contact phone for tourist %d: %v", msg.TouristPublicID, err),
		}
	}

	params := map[string]string{
		"tourist":  tourist.Name,
		"type":     string(alert.Type),
		"severity": fmt.Sprintf("%d", alert.Severity),
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal template params: %w", err)
	}

	cfg := config.Cfg
	resp, err := sms.SendSingle(ctx, phone, cfg.SMSSignName, cfg.SMSTemplateCode, string(paramsJSON))
	if err != nil {
		return fmt.Errorf("failed to send sos notification sms: %w", err)
	}

	logger.Logger.Info("SOS contact notified",
		zap.Int64("alert_public_id", msg.AlertPublicID),
		zap.Int64("tourist_public_id", msg.TouristPublicID),
		zap.String("reason", msg.Reason),
		zap.String("phone_masked", utils.MaskPhone(phone)),
		zap.String("sms_message_id", resp.MessageID),
	)

	return nil
}
