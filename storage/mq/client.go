package mq

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"TourWatch/config"
)

const (
	// EventsExchange 数据变更事件（topic），routing key 为表名
	EventsExchange = "tourwatch.events"
	// TasksExchange 后台任务（direct）
	TasksExchange = "tourwatch.tasks"

	// SosNotifyQueue SOS 联系人通知队列
	SosNotifyQueue      = "tourwatch.sos.notify"
	SosNotifyRoutingKey = "sos.notify"
)

var (
	conn     *amqp.Connection
	connOnce sync.Once
	connErr  error
)

func Init() error {
	connOnce.Do(func() {
		url := config.Cfg.GetRabbitMQURL()
		conn, connErr = amqp.Dial(url)
		if connErr != nil {
			return
		}

		connErr = declareTopology()
	})

	return connErr
}

// declareTopology 声明 exchange 和队列，幂等操作
func declareTopology() error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel for topology declaration: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare events exchange: %w", err)
	}

	if err := ch.ExchangeDeclare(
		TasksExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare tasks exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(
		SosNotifyQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare sos notify queue: %w", err)
	}

	if err := ch.QueueBind(
		SosNotifyQueue,
		SosNotifyRoutingKey,
		TasksExchange,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("failed to bind sos notify queue: %w", err)
	}

	return nil
}

func Connection() *amqp.Connection {
	return conn
}

func Close(ctx context.Context) error {
	if conn == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
