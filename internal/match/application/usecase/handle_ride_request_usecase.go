package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/vismithaN/advertisement/internal/match/application/ports/in"
	"github.com/vismithaN/advertisement/internal/match/application/ports/out"
	"github.com/vismithaN/advertisement/internal/match/domain"
	"github.com/vismithaN/advertisement/internal/shared/logger"
)

// HandleRideRequestService реализует HandleRideRequestUseCase:
// линейный скан каталога, пре-фильтр по меткам, arg-max по score.
type HandleRideRequestService struct {
	profiles  out.ProfileStore
	catalog   out.CatalogStore
	publisher out.AdPublisher
	notifier  out.MatchNotifier
	log       *logger.Logger
}

// NewHandleRideRequestService создает новый сервис подбора рекламы
func NewHandleRideRequestService(
	profiles out.ProfileStore,
	catalog out.CatalogStore,
	publisher out.AdPublisher,
	notifier out.MatchNotifier,
	log *logger.Logger,
) *HandleRideRequestService {
	return &HandleRideRequestService{
		profiles:  profiles,
		catalog:   catalog,
		publisher: publisher,
		notifier:  notifier,
		log:       log,
	}
}

// Execute подбирает единственный лучший бизнес для rider-а и публикует матч.
// Неизвестный rider — no-op без сообщения. Скан синхронный,
// O(размер каталога) на запрос — известный потолок пропускной способности
// партиции, порядок обработки событий при этом не нарушается.
func (s *HandleRideRequestService) Execute(ctx context.Context, input in.HandleRideRequestInput) (*domain.AdMatch, error) {
	rider, err := s.profiles.Get(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrRiderNotFound) {
			s.log.Debug(logger.Entry{
				Action:  "ride_request_unknown_rider",
				Message: "no ad emitted",
				UserID:  input.UserID,
			})
			return nil, nil
		}
		return nil, fmt.Errorf("get rider %d: %w", input.UserID, err)
	}

	req := domain.RideRequestContext{
		UserID:    input.UserID,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}

	best, bestScore, err := s.selectBest(ctx, rider, req)
	if err != nil {
		return nil, err
	}
	if best == nil {
		s.log.Debug(logger.Entry{
			Action:  "ride_request_no_candidates",
			Message: "no business passed the tag filter",
			UserID:  input.UserID,
		})
		return nil, nil
	}

	match := domain.AdMatch{
		UserID:  input.UserID,
		StoreID: best.StoreID,
		Name:    best.Name,
	}

	s.log.Info(logger.Entry{
		Action:  "ad_matched",
		Message: best.Name,
		UserID:  input.UserID,
		StoreID: best.StoreID,
		Additional: map[string]any{
			"score": bestScore,
			"tag":   string(best.Tag),
		},
	})

	if err := s.publisher.PublishAdMatch(ctx, match); err != nil {
		s.log.Error(logger.Entry{
			Action:  "publish_ad_match_failed",
			Message: err.Error(),
			UserID:  input.UserID,
			StoreID: best.StoreID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("publish ad match: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyMatch(ctx, match); err != nil {
			s.log.Warn(logger.Entry{
				Action:  "notify_match_failed",
				Message: err.Error(),
				UserID:  input.UserID,
			})
			// фид — best-effort, матч уже опубликован
		}
	}

	return &match, nil
}

// selectBest сканирует каталог и держит running arg-max со строгим ">".
// Каталог отдается в возрастающем порядке storeId, поэтому при равных
// score выигрывает меньший id.
func (s *HandleRideRequestService) selectBest(ctx context.Context, rider *domain.RiderProfile, req domain.RideRequestContext) (*domain.BusinessProfile, float64, error) {
	businesses, err := s.catalog.All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("scan catalog: %w", err)
	}

	maxScore := math.Inf(-1)
	var best *domain.BusinessProfile

	for _, b := range businesses {
		// Пре-фильтр: метка бизнеса должна входить в метки rider-а
		if !rider.Tags.Contains(b.Tag) {
			continue
		}

		score := domain.MatchScore(rider, b, req)
		if score > maxScore {
			maxScore = score
			best = b
		}
	}

	return best, maxScore, nil
}
