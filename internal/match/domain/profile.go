package domain

// RiderProfile — живой профиль rider-а, ключ userId.
// Создается при bootstrap-загрузке, мутируется событиями
// RIDER_STATUS / RIDER_INTEREST, не удаляется.
type RiderProfile struct {
	UserID      int    `json:"userId" db:"user_id"`
	Device      string `json:"device" db:"device"`
	Interest    string `json:"interest" db:"interest"`
	TravelCount int    `json:"travel_count" db:"travel_count"`
	Age         int    `json:"age" db:"age"`
	Mood        int    `json:"mood" db:"mood"`
	BloodSugar  int    `json:"blood_sugar" db:"blood_sugar"`
	Stress      int    `json:"stress" db:"stress"`
	Active      int    `json:"active" db:"active"`
	Tags        TagSet `json:"tags" db:"tags"`
}

// ApplySignals перезаписывает сигналы и пересчитывает метки
func (p *RiderProfile) ApplySignals(s UserSignals) {
	p.Mood = s.Mood
	p.BloodSugar = s.BloodSugar
	p.Stress = s.Stress
	p.Active = s.Active
	p.Tags = UserTags(s)
}

// BusinessProfile — запись каталога, ключ storeId.
// Загружается один раз при старте, после этого immutable;
// tag вычисляется при загрузке и больше не пересчитывается.
type BusinessProfile struct {
	StoreID     string  `json:"storeId" db:"store_id"`
	Name        string  `json:"name" db:"name"`
	Categories  string  `json:"categories" db:"categories"`
	ReviewCount int     `json:"review_count" db:"review_count"`
	Rating      float64 `json:"rating" db:"rating"`
	Price       string  `json:"price" db:"price"`
	Latitude    float64 `json:"latitude" db:"latitude"`
	Longitude   float64 `json:"longitude" db:"longitude"`
	Tag         Tag     `json:"tag" db:"tag"`
}

// RideRequestContext — эфемерный контекст одного запроса поездки
type RideRequestContext struct {
	UserID    int
	Latitude  float64
	Longitude float64
}
