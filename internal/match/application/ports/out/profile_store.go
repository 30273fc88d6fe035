package out

import (
	"context"

	"github.com/vismithaN/advertisement/internal/match/domain"
)

// ProfileStore — keyed state для профилей rider-ов.
// Все чтения/записи ключей одной партиции строго последовательны,
// кросс-партиционных транзакций нет и не требуется.
type ProfileStore interface {
	// Get возвращает профиль или domain.ErrRiderNotFound
	Get(ctx context.Context, userID int) (*domain.RiderProfile, error)

	// Put создает или перезаписывает профиль
	Put(ctx context.Context, profile *domain.RiderProfile) error
}
