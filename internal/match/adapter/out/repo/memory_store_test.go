package repo

import (
	"context"
	"testing"

	"github.com/vismithaN/advertisement/internal/match/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProfileStoreGetMissing(t *testing.T) {
	store := NewMemoryProfileStore()

	_, err := store.Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrRiderNotFound)
}

func TestMemoryProfileStorePutGet(t *testing.T) {
	store := NewMemoryProfileStore()
	ctx := context.Background()

	profile := &domain.RiderProfile{
		UserID: 1,
		Device: "iPhone 7",
		Tags:   domain.NewTagSet(domain.TagOthers),
	}
	require.NoError(t, store.Put(ctx, profile))

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, profile.UserID, got.UserID)
	assert.Equal(t, profile.Device, got.Device)

	// Get возвращает копию: мутация читателя не видна store
	got.Device = "iPhone XS"
	got.Tags.Add(domain.TagHappyChoice)

	again, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "iPhone 7", again.Device)
	assert.False(t, again.Tags.Contains(domain.TagHappyChoice))
}

func TestMemoryCatalogStoreAllSorted(t *testing.T) {
	store := NewMemoryCatalogStore()
	ctx := context.Background()

	for _, id := range []string{"charlie", "alpha", "bravo"} {
		require.NoError(t, store.Put(ctx, &domain.BusinessProfile{StoreID: id, Name: id}))
	}

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	ids := []string{all[0].StoreID, all[1].StoreID, all[2].StoreID}
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, ids)
}

func TestMemoryCatalogStorePutOverwrite(t *testing.T) {
	store := NewMemoryCatalogStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &domain.BusinessProfile{StoreID: "a", Name: "Old"}))
	require.NoError(t, store.Put(ctx, &domain.BusinessProfile{StoreID: "a", Name: "New"}))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryCatalogStoreGetMissing(t *testing.T) {
	store := NewMemoryCatalogStore()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrBusinessNotFound)
}

func TestMemoryCatalogStoreAllReturnsCopies(t *testing.T) {
	store := NewMemoryCatalogStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &domain.BusinessProfile{StoreID: "a", Name: "Cloud Bakery"}))

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	all[0].Name = "mutated"

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Cloud Bakery", got.Name)
}
