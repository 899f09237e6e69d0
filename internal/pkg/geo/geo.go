package geo

import "math"

// earthRadiusKm - средний радиус Земли в километрах
const earthRadiusKm = 6371.0

// HaversineDistance вычисляет расстояние по дуге большого круга между двумя
// точками в километрах.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)

	// Защита от выхода за [0,1] из-за ошибок округления: для совпадающих
	// точек a может оказаться чуть меньше нуля.
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// InitialBearing вычисляет начальный азимут от первой точки ко второй
// в градусах по часовой стрелке от севера, в диапазоне [0, 360).
func InitialBearing(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)
	dLon := toRadians(lon2 - lon1)

	x := math.Sin(dLon) * math.Cos(lat2Rad)
	y := math.Cos(lat1Rad)*math.Sin(lat2Rad) -
		math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(dLon)

	bearing := toDegrees(math.Atan2(x, y))
	return math.Mod(bearing+360, 360)
}

// AngleDifference возвращает кратчайшую знаковую разницу углов b-a
// в диапазоне [-180, 180). Положительное значение - b по часовой
// стрелке от a. Входные углы могут быть любыми вещественными числами.
func AngleDifference(a, b float64) float64 {
	diff := math.Mod(b-a+180, 360)
	if diff < 0 {
		diff += 360
	}
	return diff - 180
}

// ValidateCoordinates проверяет валидность координат.
// NaN не проходит ни одно из сравнений и отклоняется.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func toDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
