package in

import (
	"context"

	"github.com/vismithaN/advertisement/internal/match/domain"
)

// HandleRideRequestInput — данные события RIDE_REQUEST
type HandleRideRequestInput struct {
	UserID    int     `json:"clientId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HandleRideRequestUseCase — интерфейс use-case подбора рекламы.
// Возвращает nil, nil если rider неизвестен или ни один бизнес
// не прошел фильтр по меткам.
type HandleRideRequestUseCase interface {
	Execute(ctx context.Context, input HandleRideRequestInput) (*domain.AdMatch, error)
}
