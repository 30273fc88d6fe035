package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceIdenticalCoordinatesIsExactlyZero(t *testing.T) {
	coords := [][2]float64{
		{40.7128, -74.0060},
		{0, 0},
		{-33.8688, 151.2093},
	}
	for _, c := range coords {
		assert.Zero(t, Distance(c[0], c[1], c[0], c[1]))
	}
}

func TestDistanceOneDegreeLatitude(t *testing.T) {
	// один градус широты ≈ 60 морских минут × 1.1515 statute miles
	d := Distance(40, -74, 41, -74)
	assert.InDelta(t, 69.09, d, 0.01)
}

func TestPriceOrdinal(t *testing.T) {
	tests := []struct {
		price string
		want  int
	}{
		{"", 0},
		{"$", 1},
		{"$$", 2},
		{"$$$", 3},
		{"$$$$", 3},
		{"free", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PriceOrdinal(tt.price), "price %q", tt.price)
	}
}

func TestDeviceOrdinal(t *testing.T) {
	assert.Equal(t, 3, DeviceOrdinal("iPhone XS"))
	assert.Equal(t, 2, DeviceOrdinal("iPhone 7"))
	assert.Equal(t, 1, DeviceOrdinal("iPhone 5"))
	assert.Equal(t, 0, DeviceOrdinal("Pixel 8"))
	assert.Equal(t, 0, DeviceOrdinal(""))
}

func baselineRider() *RiderProfile {
	return &RiderProfile{
		UserID:      7,
		Device:      "unknown device",
		Interest:    "",
		TravelCount: 10,
		Age:         25,
		Tags:        NewTagSet(TagEnergyProviders),
	}
}

func baselineBakery() *BusinessProfile {
	return &BusinessProfile{
		StoreID:     "cloud-bakery-1",
		Name:        "Cloud Bakery",
		Categories:  "bakeries",
		ReviewCount: 100,
		Rating:      4.5,
		Price:       "$",
		Latitude:    40.7128,
		Longitude:   -74.0060,
		Tag:         TagEnergyProviders,
	}
}

func TestMatchScoreBaseline(t *testing.T) {
	rider := baselineRider()
	bakery := baselineBakery()
	req := RideRequestContext{UserID: 7, Latitude: bakery.Latitude, Longitude: bakery.Longitude}

	// 100 × 4.5 × (1 − 0.1×|1−0|) = 405, дистанция 0 — штрафа нет
	got := MatchScore(rider, bakery, req)
	assert.InDelta(t, 405.0, got, 1e-9)
}

func TestMatchScoreInterestBonusBeforeMultiplier(t *testing.T) {
	rider := baselineRider()
	rider.Interest = "bakeries"
	bakery := baselineBakery()
	req := RideRequestContext{UserID: 7, Latitude: bakery.Latitude, Longitude: bakery.Longitude}

	// (100×4.5 + 10) × 0.9 = 414: бонус добавляется до ценового множителя
	got := MatchScore(rider, bakery, req)
	assert.InDelta(t, 414.0, got, 1e-9)
}

func TestMatchScoreDistancePenaltyFrequentTraveler(t *testing.T) {
	rider := baselineRider()
	rider.TravelCount = 60
	rider.Age = 30
	bakery := baselineBakery()
	// ~0.22° широты ≈ 15 миль — первая ветка штрафа (distance > 10)
	req := RideRequestContext{UserID: 7, Latitude: bakery.Latitude + 0.2171, Longitude: bakery.Longitude}

	got := MatchScore(rider, bakery, req)
	assert.InDelta(t, 40.5, got, 1e-6)
}

func TestMatchScoreDistancePenaltyCasualTraveler(t *testing.T) {
	rider := baselineRider()
	rider.TravelCount = 10
	rider.Age = 30
	bakery := baselineBakery()
	// ~0.1° широты ≈ 6.9 миль — вторая ветка штрафа (distance > 5)
	req := RideRequestContext{UserID: 7, Latitude: bakery.Latitude + 0.1, Longitude: bakery.Longitude}

	got := MatchScore(rider, bakery, req)
	assert.InDelta(t, 40.5, got, 1e-6)
}

func TestMatchScoreAgeTwentyQuirk(t *testing.T) {
	// ровно 20 лет трактуется как frequent traveler: штраф только после 10 миль
	rider := baselineRider()
	rider.TravelCount = 10
	rider.Age = 20
	bakery := baselineBakery()

	// ~6.9 миль: вторая ветка не применяется (age не > 20), первая — дистанция мала
	nearReq := RideRequestContext{UserID: 7, Latitude: bakery.Latitude + 0.1, Longitude: bakery.Longitude}
	assert.InDelta(t, 405.0, MatchScore(rider, bakery, nearReq), 1e-6)

	// ~15 миль: первая ветка срабатывает
	farReq := RideRequestContext{UserID: 7, Latitude: bakery.Latitude + 0.2171, Longitude: bakery.Longitude}
	assert.InDelta(t, 40.5, MatchScore(rider, bakery, farReq), 1e-6)
}

func TestMatchScorePriceDeviceMismatch(t *testing.T) {
	rider := baselineRider()
	rider.Device = "iPhone XS" // ordinal 3
	bakery := baselineBakery() // price "$" → ordinal 1
	req := RideRequestContext{UserID: 7, Latitude: bakery.Latitude, Longitude: bakery.Longitude}

	// 450 × (1 − 0.1×|1−3|) = 360
	got := MatchScore(rider, bakery, req)
	assert.InDelta(t, 360.0, got, 1e-9)
}
