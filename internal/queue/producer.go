package queue

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"TourWatch/pkg/logger"
	"TourWatch/pkg/snowflake"
	"TourWatch/storage/mq"
)

// PublishChangeEvent 发布表变更事件，写操作成功后调用。
// 事件只是刷新触发器，发失败了大屏最多晚一轮刷新，所以只记日志不回传错误。
func PublishChangeEvent(table string, op ChangeOp, rowPublicID int64) {
	event := ChangeEvent{
		Table:       table,
		Op:          op,
		RowPublicID: rowPublicID,
		OccurredAt:  time.Now(),
	}

	err := mq.PublishTransient(
		mq.EventsExchange,
		table, // routing key 就是表名
		event,
	)

	if err != nil {
		logger.Logger.Warn("Failed to publish change event",
			zap.String("table", table),
			zap.String("op", string(op)),
			zap.Int64("row_public_id", rowPublicID),
			zap.Error(err),
		)
		return
	}

	logger.Logger.Debug("Published change event",
		zap.String("table", table),
		zap.String("op", string(op)),
		zap.Int64("row_public_id", rowPublicID),
	)
}

// PublishSosNotify 发布 SOS 联系人通知任务
func PublishSosNotify(msg SosNotifyMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.Int64("alert_public_id", msg.AlertPublicID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("sos_notify_%d", id)
	}
	if msg.ScheduledAt == "" {
		msg.ScheduledAt = time.Now().Format(time.RFC3339)
	}

	err := mq.PublishMessage(
		mq.TasksExchange,
		mq.SosNotifyRoutingKey,
		msg,
	)

	if err != nil {
		logger.Logger.Error("Failed to publish SOS notify message",
			zap.String("message_id", msg.MessageID),
			zap.Int64("alert_public_id", msg.AlertPublicID),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published SOS notify message",
		zap.String("message_id", msg.MessageID),
		zap.Int64("alert_public_id", msg.AlertPublicID),
		zap.String("reason", msg.Reason),
	)

	return nil
}
