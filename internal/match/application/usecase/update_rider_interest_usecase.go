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

// UpdateRiderInterestService реализует UpdateRiderInterestUseCase
type UpdateRiderInterestService struct {
	profiles out.ProfileStore
	log      *logger.Logger
}

// NewUpdateRiderInterestService создает новый сервис обновления interest
func NewUpdateRiderInterestService(profiles out.ProfileStore, log *logger.Logger) *UpdateRiderInterestService {
	return &UpdateRiderInterestService{
		profiles: profiles,
		log:      log,
	}
}

// Execute перезаписывает interest только если взгляд держался дольше
// порога (анти-фликер: мимолетный взгляд не меняет модель интереса).
func (s *UpdateRiderInterestService) Execute(ctx context.Context, input in.UpdateRiderInterestInput) error {
	profile, err := s.profiles.Get(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrRiderNotFound) {
			return nil
		}
		return fmt.Errorf("get rider %d: %w", input.UserID, err)
	}

	if input.Duration <= domain.InterestMinDurationMs {
		s.log.Debug(logger.Entry{
			Action:  "rider_interest_ignored",
			Message: "duration below threshold",
			UserID:  input.UserID,
			Additional: map[string]any{
				"duration_ms": input.Duration,
			},
		})
		return nil
	}

	profile.Interest = input.Interest
	if err := s.profiles.Put(ctx, profile); err != nil {
		s.log.Error(logger.Entry{
			Action:  "rider_interest_put_failed",
			Message: err.Error(),
			UserID:  input.UserID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return fmt.Errorf("put rider %d: %w", input.UserID, err)
	}

	s.log.Debug(logger.Entry{
		Action:  "rider_interest_updated",
		Message: input.Interest,
		UserID:  input.UserID,
	})

	return nil
}
