package in

import "context"

// UpdateRiderStatusInput — сигналы из события RIDER_STATUS
type UpdateRiderStatusInput struct {
	UserID     int `json:"userId"`
	Mood       int `json:"mood"`
	BloodSugar int `json:"blood_sugar"`
	Stress     int `json:"stress"`
	Active     int `json:"active"`
}

// UpdateRiderStatusUseCase — интерфейс use-case для обновления статуса rider-а
type UpdateRiderStatusUseCase interface {
	Execute(ctx context.Context, input UpdateRiderStatusInput) error
}
