package out

import (
	"context"

	"github.com/vismithaN/advertisement/internal/match/domain"
)

// MatchNotifier — best-effort уведомление ops-фида о найденном матче
type MatchNotifier interface {
	NotifyMatch(ctx context.Context, match domain.AdMatch) error
}
