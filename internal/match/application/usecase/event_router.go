package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vismithaN/advertisement/internal/match/application/ports/in"
	"github.com/vismithaN/advertisement/internal/match/domain"
	"github.com/vismithaN/advertisement/internal/shared/logger"
)

// EventRouter диспетчеризует входящее событие по полю type.
// Роутинг stateless: все состояние живет в profile/catalog stores.
type EventRouter struct {
	status   in.UpdateRiderStatusUseCase
	interest in.UpdateRiderInterestUseCase
	request  in.HandleRideRequestUseCase
	log      *logger.Logger
}

// NewEventRouter создает новый роутер событий
func NewEventRouter(
	status in.UpdateRiderStatusUseCase,
	interest in.UpdateRiderInterestUseCase,
	request in.HandleRideRequestUseCase,
	log *logger.Logger,
) *EventRouter {
	return &EventRouter{
		status:   status,
		interest: interest,
		request:  request,
		log:      log,
	}
}

// Route разбирает событие и вызывает соответствующий use case.
// Неизвестный type или недекодируемое тело возвращают
// domain.ErrUnknownEventType / domain.ErrMalformedEvent — это
// нарушения контракта транспорта, вызывающая сторона обязана упасть.
func (r *EventRouter) Route(ctx context.Context, body []byte) error {
	var envelope domain.EventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%w: decode envelope: %v", domain.ErrMalformedEvent, err)
	}

	switch envelope.Type {
	case domain.EventRiderStatus:
		var ev domain.RiderStatusEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("%w: decode %s: %v", domain.ErrMalformedEvent, domain.EventRiderStatus, err)
		}
		return r.status.Execute(ctx, in.UpdateRiderStatusInput{
			UserID:     ev.UserID,
			Mood:       ev.Mood,
			BloodSugar: ev.BloodSugar,
			Stress:     ev.Stress,
			Active:     ev.Active,
		})

	case domain.EventRiderInterest:
		var ev domain.RiderInterestEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("%w: decode %s: %v", domain.ErrMalformedEvent, domain.EventRiderInterest, err)
		}
		return r.interest.Execute(ctx, in.UpdateRiderInterestInput{
			UserID:   ev.UserID,
			Interest: ev.Interest,
			Duration: ev.Duration,
		})

	case domain.EventRideRequest:
		var ev domain.RideRequestEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("%w: decode %s: %v", domain.ErrMalformedEvent, domain.EventRideRequest, err)
		}
		_, err := r.request.Execute(ctx, in.HandleRideRequestInput{
			UserID:    ev.ClientID,
			Latitude:  ev.Latitude,
			Longitude: ev.Longitude,
		})
		return err

	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownEventType, envelope.Type)
	}
}
