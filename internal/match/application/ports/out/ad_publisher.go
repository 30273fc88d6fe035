package out

import (
	"context"

	"github.com/vismithaN/advertisement/internal/match/domain"
)

// AdPublisher — интерфейс для публикации матчей в брокер
type AdPublisher interface {
	// PublishAdMatch публикует сообщение {userId, storeId, name}
	PublishAdMatch(ctx context.Context, match domain.AdMatch) error
}
