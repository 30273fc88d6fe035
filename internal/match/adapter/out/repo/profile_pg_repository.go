package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/vismithaN/advertisement/internal/match/domain"
	"github.com/vismithaN/advertisement/internal/shared/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfilePgRepository — PostgreSQL реализация ProfileStore
type ProfilePgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewProfilePgRepository создает новый экземпляр репозитория
func NewProfilePgRepository(pool *pgxpool.Pool, log *logger.Logger) *ProfilePgRepository {
	return &ProfilePgRepository{
		pool: pool,
		log:  log,
	}
}

// Get возвращает профиль rider-а по userId
func (r *ProfilePgRepository) Get(ctx context.Context, userID int) (*domain.RiderProfile, error) {
	query := `
		SELECT user_id, device, interest, travel_count, age,
		       mood, blood_sugar, stress, active, tags
		FROM rider_profiles
		WHERE user_id = $1
	`

	profile := &domain.RiderProfile{}
	var tags []string
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Device,
		&profile.Interest,
		&profile.TravelCount,
		&profile.Age,
		&profile.Mood,
		&profile.BloodSugar,
		&profile.Stress,
		&profile.Active,
		&tags,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRiderNotFound
		}
		r.log.Error(logger.Entry{
			Action:  "db_get_rider_failed",
			Message: err.Error(),
			UserID:  userID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("select rider: %w", err)
	}

	profile.Tags = make(domain.TagSet, len(tags))
	for _, t := range tags {
		profile.Tags.Add(domain.Tag(t))
	}

	return profile, nil
}

// Put создает или перезаписывает профиль rider-а
func (r *ProfilePgRepository) Put(ctx context.Context, profile *domain.RiderProfile) error {
	query := `
		INSERT INTO rider_profiles (
			user_id, device, interest, travel_count, age,
			mood, blood_sugar, stress, active, tags, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now()
		)
		ON CONFLICT (user_id) DO UPDATE SET
			device = EXCLUDED.device,
			interest = EXCLUDED.interest,
			travel_count = EXCLUDED.travel_count,
			age = EXCLUDED.age,
			mood = EXCLUDED.mood,
			blood_sugar = EXCLUDED.blood_sugar,
			stress = EXCLUDED.stress,
			active = EXCLUDED.active,
			tags = EXCLUDED.tags,
			updated_at = now()
	`

	_, err := r.pool.Exec(ctx, query,
		profile.UserID,
		profile.Device,
		profile.Interest,
		profile.TravelCount,
		profile.Age,
		profile.Mood,
		profile.BloodSugar,
		profile.Stress,
		profile.Active,
		profile.Tags.Slice(),
	)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:  "db_put_rider_failed",
			Message: err.Error(),
			UserID:  profile.UserID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return fmt.Errorf("upsert rider: %w", err)
	}

	return nil
}
