package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/vismithaN/advertisement/internal/match/domain"
)

// MemoryProfileStore — in-memory реализация ProfileStore.
// Обработка событий последовательна внутри партиции, но ops API
// читает профили конкурентно, поэтому доступ под RWMutex.
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[int]*domain.RiderProfile
}

// NewMemoryProfileStore создает пустой store профилей
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{
		profiles: make(map[int]*domain.RiderProfile),
	}
}

// Get возвращает копию профиля или domain.ErrRiderNotFound
func (s *MemoryProfileStore) Get(ctx context.Context, userID int) (*domain.RiderProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrRiderNotFound
	}
	return copyProfile(p), nil
}

// Put создает или перезаписывает профиль
func (s *MemoryProfileStore) Put(ctx context.Context, profile *domain.RiderProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profile.UserID] = copyProfile(profile)
	return nil
}

// copyProfile — читатели не должны видеть mutation in place
func copyProfile(p *domain.RiderProfile) *domain.RiderProfile {
	cp := *p
	if p.Tags != nil {
		cp.Tags = make(domain.TagSet, len(p.Tags))
		for t := range p.Tags {
			cp.Tags[t] = struct{}{}
		}
	}
	return &cp
}

// MemoryCatalogStore — in-memory реализация CatalogStore.
// После bootstrap каталог только читается; отсортированный список
// ключей кэшируется для детерминированного скана.
type MemoryCatalogStore struct {
	mu         sync.RWMutex
	businesses map[string]*domain.BusinessProfile
	sortedIDs  []string
}

// NewMemoryCatalogStore создает пустой каталог
func NewMemoryCatalogStore() *MemoryCatalogStore {
	return &MemoryCatalogStore{
		businesses: make(map[string]*domain.BusinessProfile),
	}
}

// Get возвращает бизнес или domain.ErrBusinessNotFound
func (s *MemoryCatalogStore) Get(ctx context.Context, storeID string) (*domain.BusinessProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.businesses[storeID]
	if !ok {
		return nil, domain.ErrBusinessNotFound
	}
	cp := *b
	return &cp, nil
}

// Put создает или перезаписывает запись каталога
func (s *MemoryCatalogStore) Put(ctx context.Context, business *domain.BusinessProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.businesses[business.StoreID]; !ok {
		s.sortedIDs = append(s.sortedIDs, business.StoreID)
		sort.Strings(s.sortedIDs)
	}
	cp := *business
	s.businesses[business.StoreID] = &cp
	return nil
}

// All возвращает копии записей каталога в возрастающем порядке storeId
func (s *MemoryCatalogStore) All(ctx context.Context) ([]*domain.BusinessProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.BusinessProfile, 0, len(s.sortedIDs))
	for _, id := range s.sortedIDs {
		cp := *s.businesses[id]
		out = append(out, &cp)
	}
	return out, nil
}
