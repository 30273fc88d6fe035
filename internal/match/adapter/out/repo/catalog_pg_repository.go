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

// CatalogPgRepository — PostgreSQL реализация CatalogStore
type CatalogPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewCatalogPgRepository создает новый экземпляр репозитория
func NewCatalogPgRepository(pool *pgxpool.Pool, log *logger.Logger) *CatalogPgRepository {
	return &CatalogPgRepository{
		pool: pool,
		log:  log,
	}
}

// Get возвращает бизнес по storeId
func (r *CatalogPgRepository) Get(ctx context.Context, storeID string) (*domain.BusinessProfile, error) {
	query := `
		SELECT store_id, name, categories, review_count, rating,
		       price, latitude, longitude, tag
		FROM business_profiles
		WHERE store_id = $1
	`

	business := &domain.BusinessProfile{}
	err := r.pool.QueryRow(ctx, query, storeID).Scan(
		&business.StoreID,
		&business.Name,
		&business.Categories,
		&business.ReviewCount,
		&business.Rating,
		&business.Price,
		&business.Latitude,
		&business.Longitude,
		&business.Tag,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBusinessNotFound
		}
		r.log.Error(logger.Entry{
			Action:  "db_get_business_failed",
			Message: err.Error(),
			StoreID: storeID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("select business: %w", err)
	}

	return business, nil
}

// Put создает или перезаписывает запись каталога
func (r *CatalogPgRepository) Put(ctx context.Context, business *domain.BusinessProfile) error {
	query := `
		INSERT INTO business_profiles (
			store_id, name, categories, review_count, rating,
			price, latitude, longitude, tag, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, now()
		)
		ON CONFLICT (store_id) DO UPDATE SET
			name = EXCLUDED.name,
			categories = EXCLUDED.categories,
			review_count = EXCLUDED.review_count,
			rating = EXCLUDED.rating,
			price = EXCLUDED.price,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			tag = EXCLUDED.tag,
			updated_at = now()
	`

	_, err := r.pool.Exec(ctx, query,
		business.StoreID,
		business.Name,
		business.Categories,
		business.ReviewCount,
		business.Rating,
		business.Price,
		business.Latitude,
		business.Longitude,
		string(business.Tag),
	)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:  "db_put_business_failed",
			Message: err.Error(),
			StoreID: business.StoreID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return fmt.Errorf("upsert business: %w", err)
	}

	return nil
}

// All возвращает весь каталог в возрастающем порядке storeId
func (r *CatalogPgRepository) All(ctx context.Context) ([]*domain.BusinessProfile, error) {
	query := `
		SELECT store_id, name, categories, review_count, rating,
		       price, latitude, longitude, tag
		FROM business_profiles
		ORDER BY store_id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select businesses: %w", err)
	}
	defer rows.Close()

	var out []*domain.BusinessProfile
	for rows.Next() {
		business := &domain.BusinessProfile{}
		if err := rows.Scan(
			&business.StoreID,
			&business.Name,
			&business.Categories,
			&business.ReviewCount,
			&business.Rating,
			&business.Price,
			&business.Latitude,
			&business.Longitude,
			&business.Tag,
		); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		out = append(out, business)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}

	return out, nil
}
