package domain

import "math"

// Фиксированные ординалы устройств rider-ов; неизвестное устройство → 0
var deviceOrdinals = map[string]int{
	"iPhone XS": 3,
	"iPhone 7":  2,
	"iPhone 5":  1,
}

// DeviceOrdinal отображает device rider-а в ординал 0–3
func DeviceOrdinal(device string) int {
	return deviceOrdinals[device]
}

// PriceOrdinal отображает ценовой tier бизнеса в ординал 0–3
func PriceOrdinal(price string) int {
	switch price {
	case "$$$$", "$$$":
		return 3
	case "$$":
		return 2
	case "$":
		return 1
	default:
		return 0
	}
}

// Distance — расстояние по дуге большого круга в statute miles
// (spherical law of cosines). При побитово совпадающих координатах
// возвращает ровно 0, минуя acos: иначе acos(1) ловит ошибку domain
// на погрешности плавающей точки.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}
	theta := lon1 - lon2
	dist := math.Sin(toRadians(lat1))*math.Sin(toRadians(lat2)) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Cos(toRadians(theta))
	dist = math.Acos(dist)
	dist = toDegrees(dist)
	return dist * 60 * 1.1515
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// MatchScore вычисляет рейтинг пары (rider, business) для запроса поездки:
//  1. база: review_count × rating
//  2. +10 если interest rider-а точно равен categories бизнеса
//  3. множитель 1 − 0.1·|priceOrdinal − deviceOrdinal|
//  4. штраф ×0.1 по дистанции и возрасту
//
// Ветка age == 20 сохранена намеренно как точное равенство.
func MatchScore(rider *RiderProfile, business *BusinessProfile, req RideRequestContext) float64 {
	score := float64(business.ReviewCount) * business.Rating

	if business.Categories == rider.Interest {
		score += 10
	}

	priceValue := PriceOrdinal(business.Price)
	deviceValue := DeviceOrdinal(rider.Device)
	score *= 1 - 0.1*math.Abs(float64(priceValue-deviceValue))

	distance := Distance(business.Latitude, business.Longitude, req.Latitude, req.Longitude)
	if (rider.TravelCount > 50 || rider.Age == 20) && distance > 10 {
		score *= 0.1
	} else if (rider.TravelCount <= 50 && rider.Age > 20) && distance > 5 {
		score *= 0.1
	}

	return score
}
