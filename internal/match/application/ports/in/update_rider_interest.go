package in

import "context"

// UpdateRiderInterestInput — данные события RIDER_INTEREST
type UpdateRiderInterestInput struct {
	UserID   int    `json:"userId"`
	Interest string `json:"interest"`
	Duration int    `json:"duration"` // миллисекунды
}

// UpdateRiderInterestUseCase — интерфейс use-case для обновления interest rider-а
type UpdateRiderInterestUseCase interface {
	Execute(ctx context.Context, input UpdateRiderInterestInput) error
}
