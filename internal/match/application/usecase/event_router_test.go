package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/vismithaN/advertisement/internal/match/adapter/out/repo"
	"github.com/vismithaN/advertisement/internal/match/application/ports/out"
	"github.com/vismithaN/advertisement/internal/match/domain"
	"github.com/vismithaN/advertisement/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingPublisher записывает опубликованные матчи
type capturingPublisher struct {
	mu      sync.Mutex
	matches []domain.AdMatch
	fail    bool
}

func (p *capturingPublisher) PublishAdMatch(ctx context.Context, match domain.AdMatch) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return fmt.Errorf("broker unavailable")
	}
	p.matches = append(p.matches, match)
	return nil
}

type capturingNotifier struct {
	matches []domain.AdMatch
}

func (n *capturingNotifier) NotifyMatch(ctx context.Context, match domain.AdMatch) error {
	n.matches = append(n.matches, match)
	return nil
}

type fixture struct {
	profiles  out.ProfileStore
	catalog   out.CatalogStore
	publisher *capturingPublisher
	notifier  *capturingNotifier
	router    *EventRouter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.NewLogger("match-service-test")
	profiles := repo.NewMemoryProfileStore()
	catalog := repo.NewMemoryCatalogStore()
	publisher := &capturingPublisher{}
	notifier := &capturingNotifier{}

	statusUC := NewUpdateRiderStatusService(profiles, log)
	interestUC := NewUpdateRiderInterestService(profiles, log)
	requestUC := NewHandleRideRequestService(profiles, catalog, publisher, notifier, log)

	return &fixture{
		profiles:  profiles,
		catalog:   catalog,
		publisher: publisher,
		notifier:  notifier,
		router:    NewEventRouter(statusUC, interestUC, requestUC, log),
	}
}

func (f *fixture) seedRider(t *testing.T, p *domain.RiderProfile) {
	t.Helper()
	if p.Tags == nil {
		p.Tags = domain.NewTagSet(domain.TagOthers)
	}
	require.NoError(t, f.profiles.Put(context.Background(), p))
}

func (f *fixture) seedBusiness(t *testing.T, b *domain.BusinessProfile) {
	t.Helper()
	b.Tag = domain.ClassifyCategory(b.Categories)
	require.NoError(t, f.catalog.Put(context.Background(), b))
}

func TestRouteUnknownEventTypeIsFatalError(t *testing.T) {
	f := newFixture(t)

	err := f.router.Route(context.Background(), []byte(`{"type":"DRIVER_STATUS","userId":1}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownEventType)
}

// Недекодируемое тело — такое же нарушение контракта, как неизвестный type:
// consumer обязан дропнуть сообщение и упасть, а не уходить в requeue-цикл.
func TestRouteMalformedBodyIsFatalError(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		body string
	}{
		{"broken envelope", `not json`},
		{"broken rider status payload", `{"type":"RIDER_STATUS","userId":"not-a-number"}`},
		{"broken interest payload", `{"type":"RIDER_INTEREST","duration":"long"}`},
		{"broken ride request payload", `{"type":"RIDE_REQUEST","latitude":"north"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.router.Route(context.Background(), []byte(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedEvent)
			assert.NotErrorIs(t, err, domain.ErrUnknownEventType)
		})
	}
}

func TestRiderStatusUpdatesSignalsAndTags(t *testing.T) {
	f := newFixture(t)
	f.seedRider(t, &domain.RiderProfile{UserID: 1, Device: "iPhone 7", TravelCount: 3, Age: 40})

	event := `{"type":"RIDER_STATUS","userId":1,"mood":7,"blood_sugar":3,"stress":0,"active":0}`
	require.NoError(t, f.router.Route(context.Background(), []byte(event)))

	got, err := f.profiles.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Mood)
	assert.Equal(t, 3, got.BloodSugar)
	assert.Equal(t, []string{"happyChoice"}, got.Tags.Slice())
	// поля вне сигналов не трогаются
	assert.Equal(t, "iPhone 7", got.Device)
	assert.Equal(t, 3, got.TravelCount)
}

func TestRiderStatusUnknownRiderIsNoop(t *testing.T) {
	f := newFixture(t)

	event := `{"type":"RIDER_STATUS","userId":99,"mood":7,"blood_sugar":3,"stress":0,"active":0}`
	require.NoError(t, f.router.Route(context.Background(), []byte(event)))

	_, err := f.profiles.Get(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrRiderNotFound)
}

func TestRiderInterestThreshold(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		want     string
	}{
		{"below threshold ignored", 10_000, ""},
		{"exactly at threshold ignored", domain.InterestMinDurationMs, ""},
		{"above threshold applied", domain.InterestMinDurationMs + 1, "sushi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.seedRider(t, &domain.RiderProfile{UserID: 2})

			event := fmt.Sprintf(`{"type":"RIDER_INTEREST","userId":2,"interest":"sushi","duration":%d}`, tt.duration)
			require.NoError(t, f.router.Route(context.Background(), []byte(event)))

			got, err := f.profiles.Get(context.Background(), 2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Interest)
		})
	}
}

func TestRideRequestUnknownRiderEmitsNothing(t *testing.T) {
	f := newFixture(t)
	f.seedBusiness(t, &domain.BusinessProfile{
		StoreID: "b1", Name: "Bakery", Categories: "bakeries",
		ReviewCount: 10, Rating: 4.0,
	})

	event := `{"type":"RIDE_REQUEST","clientId":404,"latitude":40.7,"longitude":-74.0}`
	require.NoError(t, f.router.Route(context.Background(), []byte(event)))

	assert.Empty(t, f.publisher.matches)
	assert.Empty(t, f.notifier.matches)
}

func TestRideRequestEndToEndCloudBakery(t *testing.T) {
	f := newFixture(t)
	f.seedRider(t, &domain.RiderProfile{
		UserID:      7,
		Device:      "unknown device",
		TravelCount: 10,
		Age:         25,
		Tags:        domain.NewTagSet(domain.TagEnergyProviders),
	})
	f.seedBusiness(t, &domain.BusinessProfile{
		StoreID:     "cloud-bakery-1",
		Name:        "Cloud Bakery",
		Categories:  "bakeries",
		ReviewCount: 100,
		Rating:      4.5,
		Price:       "$",
		Latitude:    40.7128,
		Longitude:   -74.0060,
	})

	event := `{"type":"RIDE_REQUEST","clientId":7,"latitude":40.7128,"longitude":-74.0060}`
	require.NoError(t, f.router.Route(context.Background(), []byte(event)))

	require.Len(t, f.publisher.matches, 1)
	assert.Equal(t, domain.AdMatch{UserID: 7, StoreID: "cloud-bakery-1", Name: "Cloud Bakery"}, f.publisher.matches[0])

	// ops-фид получает тот же матч
	require.Len(t, f.notifier.matches, 1)
	assert.Equal(t, f.publisher.matches[0], f.notifier.matches[0])
}

func TestRideRequestTagPreFilter(t *testing.T) {
	f := newFixture(t)
	f.seedRider(t, &domain.RiderProfile{
		UserID: 7,
		Tags:   domain.NewTagSet(domain.TagEnergyProviders),
	})
	// happyChoice не входит в метки rider-а — кандидат отсеивается до scoring
	f.seedBusiness(t, &domain.BusinessProfile{
		StoreID: "trattoria-1", Name: "Trattoria", Categories: "italian",
		ReviewCount: 1000, Rating: 5.0,
	})

	event := `{"type":"RIDE_REQUEST","clientId":7,"latitude":40.7,"longitude":-74.0}`
	require.NoError(t, f.router.Route(context.Background(), []byte(event)))

	assert.Empty(t, f.publisher.matches)
}

func TestRideRequestTieBreakLowestStoreID(t *testing.T) {
	f := newFixture(t)
	f.seedRider(t, &domain.RiderProfile{
		UserID: 7,
		Tags:   domain.NewTagSet(domain.TagEnergyProviders),
	})

	// идентичные бизнесы → равные score; выигрывает меньший storeId
	for _, id := range []string{"zz-bakery", "aa-bakery", "mm-bakery"} {
		f.seedBusiness(t, &domain.BusinessProfile{
			StoreID: id, Name: id, Categories: "bakeries",
			ReviewCount: 50, Rating: 4.0, Price: "$",
			Latitude: 40.7, Longitude: -74.0,
		})
	}

	event := `{"type":"RIDE_REQUEST","clientId":7,"latitude":40.7,"longitude":-74.0}`
	require.NoError(t, f.router.Route(context.Background(), []byte(event)))

	require.Len(t, f.publisher.matches, 1)
	assert.Equal(t, "aa-bakery", f.publisher.matches[0].StoreID)
}

func TestRideRequestPicksHighestScore(t *testing.T) {
	f := newFixture(t)
	f.seedRider(t, &domain.RiderProfile{
		UserID: 7,
		Tags:   domain.NewTagSet(domain.TagEnergyProviders, domain.TagStressRelease),
	})

	f.seedBusiness(t, &domain.BusinessProfile{
		StoreID: "small-cafe", Name: "Small Cafe", Categories: "coffee",
		ReviewCount: 10, Rating: 4.0, Latitude: 40.7, Longitude: -74.0,
	})
	f.seedBusiness(t, &domain.BusinessProfile{
		StoreID: "top-bakery", Name: "Top Bakery", Categories: "bakeries",
		ReviewCount: 500, Rating: 4.8, Latitude: 40.7, Longitude: -74.0,
	})

	event := `{"type":"RIDE_REQUEST","clientId":7,"latitude":40.7,"longitude":-74.0}`
	require.NoError(t, f.router.Route(context.Background(), []byte(event)))

	require.Len(t, f.publisher.matches, 1)
	assert.Equal(t, "top-bakery", f.publisher.matches[0].StoreID)
}

func TestRideRequestPublishFailureIsError(t *testing.T) {
	f := newFixture(t)
	f.publisher.fail = true
	f.seedRider(t, &domain.RiderProfile{
		UserID: 7,
		Tags:   domain.NewTagSet(domain.TagEnergyProviders),
	})
	f.seedBusiness(t, &domain.BusinessProfile{
		StoreID: "b1", Name: "Bakery", Categories: "bakeries",
		ReviewCount: 10, Rating: 4.0,
	})

	event := `{"type":"RIDE_REQUEST","clientId":7,"latitude":40.7,"longitude":-74.0}`
	err := f.router.Route(context.Background(), []byte(event))
	require.Error(t, err)
}
