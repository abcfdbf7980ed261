package geo

import (
	"math"

	"github.com/shenikar/tourist_tracking_system/internal/models"
)

// EarthRadiusMeters - средний радиус Земли в метрах
const EarthRadiusMeters = 6371000

// Haversine возвращает расстояние по большому кругу между двумя точками в метрах
func Haversine(a, b models.Point) float64 {
	phi1 := a.Latitude * math.Pi / 180
	phi2 := b.Latitude * math.Pi / 180
	deltaPhi := (b.Latitude - a.Latitude) * math.Pi / 180
	deltaLambda := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// InCircle проверяет, лежит ли точка внутри круга (граница включительно)
func InCircle(p, center models.Point, radiusMeters float64) bool {
	return Haversine(p, center) <= radiusMeters
}

// InPolygon проверяет принадлежность точки полигону методом трассировки луча.
// Граница считается внутренней областью. Кольцо из менее чем трёх точек
// отбрасывается ещё при создании зоны, здесь возвращаем false.
func InPolygon(p models.Point, ring []models.Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := ring[i], ring[j]

		if onSegment(p, vi, vj) {
			return true
		}

		intersects := (vi.Latitude > p.Latitude) != (vj.Latitude > p.Latitude) &&
			p.Longitude < (vj.Longitude-vi.Longitude)*(p.Latitude-vi.Latitude)/
				(vj.Latitude-vi.Latitude)+vi.Longitude
		if intersects {
			inside = !inside
		}
	}
	return inside
}

// onSegment проверяет, лежит ли точка на отрезке [a, b]
func onSegment(p, a, b models.Point) bool {
	cross := (b.Longitude-a.Longitude)*(p.Latitude-a.Latitude) -
		(b.Latitude-a.Latitude)*(p.Longitude-a.Longitude)
	if math.Abs(cross) > 1e-12 {
		return false
	}
	if p.Latitude < math.Min(a.Latitude, b.Latitude) || p.Latitude > math.Max(a.Latitude, b.Latitude) {
		return false
	}
	if p.Longitude < math.Min(a.Longitude, b.Longitude) || p.Longitude > math.Max(a.Longitude, b.Longitude) {
		return false
	}
	return true
}
