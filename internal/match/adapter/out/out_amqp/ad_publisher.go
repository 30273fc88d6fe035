package outamqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vismithaN/advertisement/internal/match/domain"
	"github.com/vismithaN/advertisement/internal/shared/logger"
	"github.com/vismithaN/advertisement/internal/shared/mq"

	"github.com/google/uuid"
)

// AdEventPublisher публикует матчи в ads_topic
type AdEventPublisher struct {
	mqConn *mq.RabbitMQ
	log    *logger.Logger
}

// NewAdEventPublisher создает новый publisher матчей
func NewAdEventPublisher(mqConn *mq.RabbitMQ, log *logger.Logger) *AdEventPublisher {
	return &AdEventPublisher{
		mqConn: mqConn,
		log:    log,
	}
}

// PublishAdMatch публикует сообщение {userId, storeId, name} с correlation id
func (p *AdEventPublisher) PublishAdMatch(ctx context.Context, match domain.AdMatch) error {
	body, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("marshal ad match: %w", err)
	}

	correlationID := uuid.New().String()
	if err := p.mqConn.Publish(ctx, mq.AdsExchange, mq.AdsQueue, body, correlationID); err != nil {
		return fmt.Errorf("publish ad match: %w", err)
	}

	p.log.Debug(logger.Entry{
		Action:    "ad_match_published",
		Message:   match.Name,
		RequestID: correlationID,
		UserID:    match.UserID,
		StoreID:   match.StoreID,
	})

	return nil
}
