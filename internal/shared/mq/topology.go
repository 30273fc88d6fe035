package mq

import (
	"fmt"

	"github.com/vismithaN/advertisement/internal/shared/logger"
)

// Имена exchanges/queues общие для всех сервисов
const (
	EventsExchange = "events_topic"
	AdsExchange    = "ads_topic"

	EventsQueue = "events.inbound"
	AdsQueue    = "ad.matched"
)

// SetupTopology создает все exchanges, queues и bindings
func SetupTopology(mq *RabbitMQ, log *logger.Logger) error {
	ch := mq.Channel()
	if ch == nil {
		return fmt.Errorf("rabbitmq channel not available")
	}

	// 1. Exchange: events_topic (topic) — входящий поток событий riders
	if err := ch.ExchangeDeclare(
		EventsExchange, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // args
	); err != nil {
		return fmt.Errorf("declare %s: %w", EventsExchange, err)
	}

	// 2. Exchange: ads_topic (topic) — исходящий поток рекламных матчей
	if err := ch.ExchangeDeclare(
		AdsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("declare %s: %w", AdsExchange, err)
	}

	// 3. Очередь входящих событий.
	// Ключ маршрутизации events.{userId}: брокер гарантирует порядок
	// внутри очереди, consumer читает её последовательно (prefetch 1).
	if _, err := ch.QueueDeclare(EventsQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", EventsQueue, err)
	}
	if err := ch.QueueBind(EventsQueue, "events.*", EventsExchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", EventsQueue, err)
	}

	// 4. Очередь исходящих матчей
	if _, err := ch.QueueDeclare(AdsQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", AdsQueue, err)
	}
	if err := ch.QueueBind(AdsQueue, AdsQueue, AdsExchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", AdsQueue, err)
	}

	log.Info(logger.Entry{
		Action:  "topology_setup_complete",
		Message: "all exchanges and queues created",
	})

	return nil
}
