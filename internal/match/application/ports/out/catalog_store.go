package out

import (
	"context"

	"github.com/vismithaN/advertisement/internal/match/domain"
)

// CatalogStore — keyed state для каталога бизнесов.
// Каталог заполняется при bootstrap и после этого только читается.
type CatalogStore interface {
	// Get возвращает бизнес или domain.ErrBusinessNotFound
	Get(ctx context.Context, storeID string) (*domain.BusinessProfile, error)

	// Put создает или перезаписывает запись каталога
	Put(ctx context.Context, business *domain.BusinessProfile) error

	// All возвращает весь каталог в возрастающем порядке storeId —
	// скан детерминирован, при равных score выигрывает меньший id
	All(ctx context.Context) ([]*domain.BusinessProfile, error)
}
