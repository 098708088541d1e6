package realtime

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"TourWatch/pkg/logger"
	"TourWatch/storage/mq"
)

// MQFeed 基于 RabbitMQ topic exchange 的变更事件源。
// 每张表开一个独占的 auto-delete 队列，routing key 绑定表名。
type MQFeed struct{}

func NewMQFeed() *MQFeed {
	return &MQFeed{}
}

func (f *MQFeed) Subscribe(table string, onEvent func()) (func(), error) {
	conn := mq.Connection()
	if conn == nil {
		return nil, fmt.Errorf("RabbitMQ connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel for table feed: %w", err)
	}

	// 独占 + auto-delete，订阅拆除后队列自动消失
	q, err := ch.QueueDeclare(
		"",    // 由服务端命名
		false, // durable
		true,  // auto-delete
		true,  // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare feed queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, table, mq.EventsExchange, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to bind feed queue: %w", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",   // consumer tag 自动生成
		true, // auto-ack：事件只是刷新触发器，丢了无所谓
		true, // exclusive
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to consume feed queue: %w", err)
	}

	go func() {
		for range msgs {
			onEvent()
		}
		logger.Logger.Debug("Table feed consumer exited",
			zap.String("table", table),
		)
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			if err := ch.Close(); err != nil {
				logger.Logger.Warn("Failed to close feed channel",
					zap.String("table", table),
					zap.Error(err),
				)
			}
		})
	}

	return stop, nil
}
