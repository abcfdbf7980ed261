package models

import (
	"time"

	"github.com/google/uuid"
)

// Классификации геозон
const (
	ZoneTourist    = "tourist_zone"
	ZoneRestricted = "restricted_area"
	ZoneEmergency  = "emergency_zone"
	ZoneHighTraff  = "high_traffic"
	ZoneMonitoring = "monitoring_area"
	ZoneFacility   = "facility"
)

// Типы геометрии геозоны
const (
	GeometryCircle  = "Circle"
	GeometryPolygon = "Polygon"
)

// ValidZoneType проверяет классификацию геозоны
func ValidZoneType(zoneType string) bool {
	switch zoneType {
	case ZoneTourist, ZoneRestricted, ZoneEmergency, ZoneHighTraff, ZoneMonitoring, ZoneFacility:
		return true
	}
	return false
}

// Geometry - геометрия зоны: круг (центр + радиус в метрах) или полигон (кольцо точек)
type Geometry struct {
	Type         string  `json:"type"`
	Center       *Point  `json:"center,omitempty"`
	RadiusMeters float64 `json:"radius_meters,omitempty"`
	Ring         []Point `json:"ring,omitempty"`
}

// AllowedHours - интервал разрешённого посещения в формате "HH:MM"
type AllowedHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Rules - правила зоны: вместимость, порог оповещения, разрешённые часы
type Rules struct {
	MaxCapacity    int           `json:"max_capacity,omitempty"`
	AlertThreshold float64       `json:"alert_threshold"`
	AllowedHours   *AllowedHours `json:"allowed_hours,omitempty"`
}

// Statistics - счётчики посещаемости зоны.
// CurrentOccupancy обновляется движком атомарными инкрементами.
type Statistics struct {
	TotalVisitors    int       `json:"total_visitors"`
	CurrentOccupancy int       `json:"current_occupancy"`
	PeakOccupancy    int       `json:"peak_occupancy"`
	LastUpdated      time.Time `json:"last_updated"`
}

// RuleFlag - нарушение правила зоны, обнаруженное при проверке вхождения
type RuleFlag struct {
	Type     string
	Severity string
	Message  string
}

// ZoneHit - зона, содержащая проверяемую точку, вместе с нарушениями её правил
type ZoneHit struct {
	Zone  *Geofence
	Flags []RuleFlag
}

// ZoneAnalytics - сводка по зоне для панели мониторинга
type ZoneAnalytics struct {
	ZoneID          uuid.UUID      `json:"zone_id"`
	ZoneName        string         `json:"zone_name"`
	ZoneType        string         `json:"zone_type"`
	AlertsByType    map[string]int `json:"alerts_by_type"`
	UtilizationRate *float64       `json:"utilization_rate,omitempty"`
}

// Geofence - именованная географическая зона с классификацией и правилами
type Geofence struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"type"`
	Geometry    Geometry   `json:"geometry"`
	Rules       Rules      `json:"rules"`
	Statistics  Statistics `json:"statistics"`
	Active      bool       `json:"active"`
	CreatedBy   string     `json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
