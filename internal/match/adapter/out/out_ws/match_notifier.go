package outws

import (
	"context"

	"github.com/vismithaN/advertisement/internal/match/domain"
	"github.com/vismithaN/advertisement/internal/shared/logger"
	"github.com/vismithaN/advertisement/internal/shared/ws"
)

// feedMessage — формат сообщения ops-фида
type feedMessage struct {
	Type    string `json:"type"` // ad_matched
	UserID  int    `json:"userId"`
	StoreID string `json:"storeId"`
	Name    string `json:"name"`
}

// MatchFeedNotifier транслирует матчи в WebSocket hub
type MatchFeedNotifier struct {
	hub *ws.Hub
	log *logger.Logger
}

// NewMatchFeedNotifier создает новый notifier
func NewMatchFeedNotifier(hub *ws.Hub, log *logger.Logger) *MatchFeedNotifier {
	return &MatchFeedNotifier{
		hub: hub,
		log: log,
	}
}

// NotifyMatch отправляет матч всем подключенным ops-клиентам
func (n *MatchFeedNotifier) NotifyMatch(ctx context.Context, match domain.AdMatch) error {
	return n.hub.Broadcast(feedMessage{
		Type:    "ad_matched",
		UserID:  match.UserID,
		StoreID: match.StoreID,
		Name:    match.Name,
	})
}
