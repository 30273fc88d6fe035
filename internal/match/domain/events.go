package domain

// Типы входящих событий
const (
	EventRiderStatus   = "RIDER_STATUS"
	EventRiderInterest = "RIDER_INTEREST"
	EventRideRequest   = "RIDE_REQUEST"
)

// InterestMinDurationMs — порог анти-фликера для RIDER_INTEREST:
// interest перезаписывается только если взгляд держался дольше 5 минут.
const InterestMinDurationMs = 5 * 60 * 1000

// EventEnvelope — дискриминатор типа входящего события
type EventEnvelope struct {
	Type string `json:"type"`
}

// RiderStatusEvent обновляет сигналы и метки rider-а
type RiderStatusEvent struct {
	Type       string `json:"type"`
	UserID     int    `json:"userId"`
	Mood       int    `json:"mood"`
	BloodSugar int    `json:"blood_sugar"`
	Stress     int    `json:"stress"`
	Active     int    `json:"active"`
}

// RiderInterestEvent условно обновляет interest rider-а
type RiderInterestEvent struct {
	Type     string `json:"type"`
	UserID   int    `json:"userId"`
	Interest string `json:"interest"`
	Duration int    `json:"duration"` // миллисекунды
}

// RideRequestEvent запрашивает подбор рекламы для поездки
type RideRequestEvent struct {
	Type      string  `json:"type"`
	ClientID  int     `json:"clientId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AdMatch — исходящее сообщение: лучший бизнес для rider-а
type AdMatch struct {
	UserID  int    `json:"userId"`
	StoreID string `json:"storeId"`
	Name    string `json:"name"`
}
