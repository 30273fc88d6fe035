package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vismithaN/advertisement/internal/match/adapter/out/repo"
	"github.com/vismithaN/advertisement/internal/match/domain"
	"github.com/vismithaN/advertisement/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoaderLoadsRidersAndBusinesses(t *testing.T) {
	dir := t.TempDir()

	riders := writeFile(t, dir, "riders.json",
		`{"userId":1,"device":"iPhone XS","interest":"","travel_count":61,"age":25}
{"userId":2,"device":"iPhone 5","interest":"sushi","travel_count":3,"age":31}
`)
	businesses := writeFile(t, dir, "businesses.json",
		`{"storeId":"b1","name":"Cloud Bakery","categories":"bakeries","review_count":100,"rating":4.5,"price":"$","latitude":40.7,"longitude":-74.0}
{"storeId":"b2","name":"Green Sushi","categories":"sushi","review_count":55,"rating":4.1,"price":"$$","latitude":40.8,"longitude":-74.1}
`)

	profiles := repo.NewMemoryProfileStore()
	catalog := repo.NewMemoryCatalogStore()
	l := NewLoader(profiles, catalog, logger.NewLogger("match-service-test"))

	require.NoError(t, l.Load(context.Background(), riders, businesses))

	rider, err := profiles.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "iPhone XS", rider.Device)
	assert.Equal(t, 61, rider.TravelCount)
	// метки появляются только с первым RIDER_STATUS
	assert.Equal(t, []string{"others"}, rider.Tags.Slice())

	bakery, err := catalog.Get(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.TagEnergyProviders, bakery.Tag)

	sushi, err := catalog.Get(context.Background(), "b2")
	require.NoError(t, err)
	assert.Equal(t, domain.TagLowCalories, sushi.Tag)
}

func TestLoaderSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()

	riders := writeFile(t, dir, "riders.json",
		`{"userId":1,"device":"iPhone 7","travel_count":5,"age":40}
{not valid json
{"userId":3,"device":"iPhone 5","travel_count":9,"age":22}
`)
	businesses := writeFile(t, dir, "businesses.json",
		`garbage line
{"storeId":"ok","name":"OK Diner","categories":"breakfast_brunch","review_count":12,"rating":3.9}
`)

	profiles := repo.NewMemoryProfileStore()
	catalog := repo.NewMemoryCatalogStore()
	l := NewLoader(profiles, catalog, logger.NewLogger("match-service-test"))

	// битые строки пропускаются, загрузка не фатальна
	require.NoError(t, l.Load(context.Background(), riders, businesses))

	_, err := profiles.Get(context.Background(), 1)
	assert.NoError(t, err)
	_, err = profiles.Get(context.Background(), 3)
	assert.NoError(t, err)

	all, err := catalog.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "ok", all[0].StoreID)
	assert.Equal(t, domain.TagHappyChoice, all[0].Tag)
}

func TestLoaderMissingFileIsError(t *testing.T) {
	profiles := repo.NewMemoryProfileStore()
	catalog := repo.NewMemoryCatalogStore()
	l := NewLoader(profiles, catalog, logger.NewLogger("match-service-test"))

	err := l.Load(context.Background(), "/nonexistent/riders.json", "/nonexistent/businesses.json")
	require.Error(t, err)
}
