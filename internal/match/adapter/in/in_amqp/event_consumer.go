package inamqp

import (
	"context"
	"errors"
	"fmt"

	"github.com/vismithaN/advertisement/internal/match/application/usecase"
	"github.com/vismithaN/advertisement/internal/match/domain"
	"github.com/vismithaN/advertisement/internal/shared/logger"
	"github.com/vismithaN/advertisement/internal/shared/mq"
)

// EventConsumer читает входящий поток событий rider-ов и передает
// их роутеру. Сообщения обрабатываются строго по одному (prefetch 1),
// что дает in-order, single-threaded обработку внутри партиции.
type EventConsumer struct {
	mqConn *mq.RabbitMQ
	router *usecase.EventRouter
	log    *logger.Logger
}

// NewEventConsumer создает новый consumer входящих событий
func NewEventConsumer(mqConn *mq.RabbitMQ, router *usecase.EventRouter, log *logger.Logger) *EventConsumer {
	return &EventConsumer{
		mqConn: mqConn,
		router: router,
		log:    log,
	}
}

// Start запускает consumer для events.inbound. Блокирует до отмены ctx.
// Неизвестный тип события или недекодируемое тело — unrecoverable:
// consumer останавливается и возвращает ошибку, сервис обязан упасть.
// Requeue используется только для transient ошибок (store I/O).
func (c *EventConsumer) Start(ctx context.Context) error {
	ch := c.mqConn.Channel()
	if ch == nil {
		return fmt.Errorf("failed to get RabbitMQ channel")
	}

	msgs, err := ch.Consume(
		mq.EventsQueue, // queue
		"",             // consumer tag
		false,          // auto-ack
		false,          // exclusive
		false,          // no-local
		false,          // no-wait
		nil,            // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.log.Info(logger.Entry{
		Action:  "event_consumer_started",
		Message: fmt.Sprintf("listening on queue: %s", mq.EventsQueue),
	})

	for {
		select {
		case <-ctx.Done():
			c.log.Info(logger.Entry{Action: "event_consumer_stopping", Message: "context cancelled"})
			return ctx.Err()

		case msg, ok := <-msgs:
			if !ok {
				c.log.Warn(logger.Entry{Action: "event_consumer_channel_closed", Message: "message channel closed"})
				return fmt.Errorf("message channel closed")
			}

			if err := c.router.Route(ctx, msg.Body); err != nil {
				if errors.Is(err, domain.ErrUnknownEventType) || errors.Is(err, domain.ErrMalformedEvent) {
					// Контракт транспорта нарушен — дальше работать нельзя.
					// Requeue здесь зациклил бы consumer на том же сообщении.
					_ = msg.Nack(false, false)
					c.log.Error(logger.Entry{
						Action:  "event_contract_violation",
						Message: err.Error(),
						Error:   &logger.ErrObj{Msg: err.Error()},
						Additional: map[string]any{
							"routing_key": msg.RoutingKey,
						},
					})
					return err
				}

				c.log.Error(logger.Entry{
					Action:  "handle_event_failed",
					Message: err.Error(),
					Error:   &logger.ErrObj{Msg: err.Error()},
					Additional: map[string]any{
						"routing_key": msg.RoutingKey,
					},
				})
				// Nack with requeue для повторной попытки
				_ = msg.Nack(false, true)
				continue
			}

			_ = msg.Ack(false)
		}
	}
}
