package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/vismithaN/advertisement/internal/match/application/ports/in"
	"github.com/vismithaN/advertisement/internal/match/application/ports/out"
	"github.com/vismithaN/advertisement/internal/match/domain"
	"github.com/vismithaN/advertisement/internal/shared/logger"
)

// UpdateRiderStatusService реализует UpdateRiderStatusUseCase
type UpdateRiderStatusService struct {
	profiles out.ProfileStore
	log      *logger.Logger
}

// NewUpdateRiderStatusService создает новый сервис обновления статуса
func NewUpdateRiderStatusService(profiles out.ProfileStore, log *logger.Logger) *UpdateRiderStatusService {
	return &UpdateRiderStatusService{
		profiles: profiles,
		log:      log,
	}
}

// Execute перезаписывает сигналы профиля и пересчитывает метки.
// Неизвестный rider — штатный no-op: профиль должен был прийти из bootstrap.
func (s *UpdateRiderStatusService) Execute(ctx context.Context, input in.UpdateRiderStatusInput) error {
	profile, err := s.profiles.Get(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrRiderNotFound) {
			s.log.Debug(logger.Entry{
				Action:  "rider_status_unknown_rider",
				Message: "dropping status event for rider outside bootstrap set",
				UserID:  input.UserID,
			})
			return nil
		}
		return fmt.Errorf("get rider %d: %w", input.UserID, err)
	}

	profile.ApplySignals(domain.UserSignals{
		Mood:       input.Mood,
		BloodSugar: input.BloodSugar,
		Stress:     input.Stress,
		Active:     input.Active,
	})

	if err := s.profiles.Put(ctx, profile); err != nil {
		s.log.Error(logger.Entry{
			Action:  "rider_status_put_failed",
			Message: err.Error(),
			UserID:  input.UserID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return fmt.Errorf("put rider %d: %w", input.UserID, err)
	}

	s.log.Debug(logger.Entry{
		Action:  "rider_status_updated",
		Message: "signals and tags refreshed",
		UserID:  input.UserID,
		Additional: map[string]any{
			"tags": profile.Tags.Slice(),
		},
	})

	return nil
}
