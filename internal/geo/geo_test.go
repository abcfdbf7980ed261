package geo

import (
	"math"
	"testing"

	"github.com/shenikar/tourist_tracking_system/internal/models"
	"github.com/stretchr/testify/assert"
)

// lawOfCosines - независимая формула расстояния для перекрестной проверки
func lawOfCosines(a, b models.Point) float64 {
	phi1 := a.Latitude * math.Pi / 180
	phi2 := b.Latitude * math.Pi / 180
	deltaLambda := (b.Longitude - a.Longitude) * math.Pi / 180

	return EarthRadiusMeters * math.Acos(
		math.Sin(phi1)*math.Sin(phi2)+math.Cos(phi1)*math.Cos(phi2)*math.Cos(deltaLambda))
}

func TestHaversine_ZeroDistance(t *testing.T) {
	p := models.Point{Latitude: 55.7558, Longitude: 37.6173}
	assert.Equal(t, 0.0, Haversine(p, p))
}

func TestHaversine_Symmetric(t *testing.T) {
	a := models.Point{Latitude: 55.7558, Longitude: 37.6173}
	b := models.Point{Latitude: 59.9343, Longitude: 30.3351}

	assert.InDelta(t, Haversine(a, b), Haversine(b, a), 1e-9)
}

func TestHaversine_KnownDistances(t *testing.T) {
	tests := []struct {
		name string
		a, b models.Point
	}{
		{
			name: "Москва - Санкт-Петербург",
			a:    models.Point{Latitude: 55.7558, Longitude: 37.6173},
			b:    models.Point{Latitude: 59.9343, Longitude: 30.3351},
		},
		{
			name: "соседние точки в пределах города",
			a:    models.Point{Latitude: 55.7520, Longitude: 37.6175},
			b:    models.Point{Latitude: 55.7539, Longitude: 37.6208},
		},
		{
			name: "через экватор",
			a:    models.Point{Latitude: 1.0, Longitude: 10.0},
			b:    models.Point{Latitude: -1.0, Longitude: 10.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.a, tt.b)
			want := lawOfCosines(tt.a, tt.b)
			// Формулы сходятся до метра на таких дистанциях
			assert.InDelta(t, want, got, 1.0)
		})
	}
}

func TestHaversine_OneDegreeLatitude(t *testing.T) {
	// Один градус широты на сфере радиуса 6371000 м
	a := models.Point{Latitude: 0, Longitude: 0}
	b := models.Point{Latitude: 1, Longitude: 0}

	want := EarthRadiusMeters * math.Pi / 180
	assert.InDelta(t, want, Haversine(a, b), 0.001)
}

func TestInCircle(t *testing.T) {
	center := models.Point{Latitude: 55.7558, Longitude: 37.6173}

	near := models.Point{Latitude: 55.7560, Longitude: 37.6175}
	far := models.Point{Latitude: 55.8558, Longitude: 37.6173}

	assert.True(t, InCircle(near, center, 100))
	assert.False(t, InCircle(far, center, 100))

	// Точка на границе принадлежит кругу
	assert.True(t, InCircle(center, center, 0))
}

func TestInPolygon_Square(t *testing.T) {
	ring := []models.Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 10},
		{Latitude: 10, Longitude: 10},
		{Latitude: 10, Longitude: 0},
	}

	assert.True(t, InPolygon(models.Point{Latitude: 5, Longitude: 5}, ring))
	assert.False(t, InPolygon(models.Point{Latitude: 15, Longitude: 5}, ring))
	assert.False(t, InPolygon(models.Point{Latitude: -1, Longitude: -1}, ring))
}

func TestInPolygon_BoundaryInclusive(t *testing.T) {
	ring := []models.Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 10},
		{Latitude: 10, Longitude: 10},
		{Latitude: 10, Longitude: 0},
	}

	// Вершина
	assert.True(t, InPolygon(models.Point{Latitude: 0, Longitude: 0}, ring))
	// Середина ребра
	assert.True(t, InPolygon(models.Point{Latitude: 0, Longitude: 5}, ring))
	assert.True(t, InPolygon(models.Point{Latitude: 5, Longitude: 10}, ring))
}

func TestInPolygon_Concave(t *testing.T) {
	// Полигон в форме буквы "П"
	ring := []models.Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 10, Longitude: 0},
		{Latitude: 10, Longitude: 10},
		{Latitude: 0, Longitude: 10},
		{Latitude: 0, Longitude: 7},
		{Latitude: 7, Longitude: 7},
		{Latitude: 7, Longitude: 3},
		{Latitude: 0, Longitude: 3},
	}

	assert.True(t, InPolygon(models.Point{Latitude: 8, Longitude: 5}, ring))
	// Точка в выемке снаружи
	assert.False(t, InPolygon(models.Point{Latitude: 3, Longitude: 5}, ring))
}

func TestInPolygon_DegenerateRing(t *testing.T) {
	assert.False(t, InPolygon(models.Point{Latitude: 1, Longitude: 1}, nil))
	assert.False(t, InPolygon(models.Point{Latitude: 1, Longitude: 1}, []models.Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 2, Longitude: 2},
	}))
}
