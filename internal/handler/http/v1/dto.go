package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_tracking_system/internal/models"
)

// ErrorResponse DTO для ответа с ошибкой
// @Description DTO для ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PositionDTO - координаты в теле запроса
type PositionDTO struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// TouristInfoDTO - дополнительная информация о туристе
type TouristInfoDTO struct {
	Name             string `json:"name,omitempty"`
	Email            string `json:"email,omitempty" validate:"omitempty,email"`
	Nationality      string `json:"nationality,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
}

// LinkRequest DTO для привязки карты
// @Description DTO для привязки карты к туристу
type LinkRequest struct {
	CardID          string          `json:"card_id" validate:"required"`
	ContactID       string          `json:"contact_id" validate:"required"`
	TouristInfo     *TouristInfoDTO `json:"tourist_info,omitempty"`
	InitialPosition *PositionDTO    `json:"initial_position,omitempty"`
}

// DeviceInfoDTO - сведения об устройстве
type DeviceInfoDTO struct {
	UserAgent string  `json:"user_agent,omitempty"`
	Platform  string  `json:"platform,omitempty"`
	Battery   float64 `json:"battery,omitempty"`
}

// LocationUpdateRequest DTO для обновления позиции
// @Description DTO для обновления позиции туриста
type LocationUpdateRequest struct {
	CardID     string         `json:"card_id" validate:"required"`
	ContactID  string         `json:"contact_id,omitempty"`
	Latitude   *float64       `json:"latitude" validate:"required,latitude"`
	Longitude  *float64       `json:"longitude" validate:"required,longitude"`
	Accuracy   *float64       `json:"accuracy,omitempty"`
	Altitude   *float64       `json:"altitude,omitempty"`
	Speed      *float64       `json:"speed,omitempty"`
	Heading    *float64       `json:"heading,omitempty"`
	Source     string         `json:"source,omitempty" validate:"omitempty,oneof=gps network manual"`
	DeviceInfo *DeviceInfoDTO `json:"device_info,omitempty"`
}

// LocationUpdateResponse DTO для ответа на обновление позиции
// @Description DTO для ответа на обновление позиции
type LocationUpdateResponse struct {
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Location  models.Point    `json:"location"`
	Status    string          `json:"status"`
	Alerts    []AlertResponse `json:"alerts,omitempty"`
}

// ReturnRequest DTO для возврата карты
type ReturnRequest struct {
	CardID string `json:"card_id" validate:"required"`
}

// NearbyRequest DTO для поиска туристов поблизости
// @Description DTO для поиска туристов поблизости
type NearbyRequest struct {
	Latitude    *float64 `json:"latitude" validate:"required,latitude"`
	Longitude   *float64 `json:"longitude" validate:"required,longitude"`
	MaxDistance float64  `json:"max_distance,omitempty" validate:"omitempty,gt=0"`
}

// StatusUpdateRequest DTO для административной смены статуса
type StatusUpdateRequest struct {
	Status       string `json:"status" validate:"required,oneof=active inactive suspicious emergency"`
	AlertMessage string `json:"alert_message,omitempty"`
}

// AcknowledgeRequest DTO для подтверждения оповещения
type AcknowledgeRequest struct {
	AcknowledgedBy string `json:"acknowledged_by" validate:"required"`
}

// TrackingResponse DTO для ответа с записью отслеживания
// @Description DTO для ответа с записью отслеживания
type TrackingResponse struct {
	CardID          string               `json:"card_id"`
	ContactID       string               `json:"contact_id"`
	TouristInfo     models.TouristInfo   `json:"tourist_info"`
	Location        *models.Point        `json:"location,omitempty"`
	Status          string               `json:"status"`
	CardIssued      bool                 `json:"card_issued"`
	IssuedAt        time.Time            `json:"issued_at"`
	ReturnedAt      *time.Time           `json:"returned_at,omitempty"`
	LastUpdated     time.Time            `json:"last_updated"`
	RecentAlerts    []models.RecentAlert `json:"recent_alerts,omitempty"`
	ActiveZoneCount int                  `json:"active_zone_count"`
}

// TouristListResponse DTO для списка туристов
type TouristListResponse struct {
	Count    int                `json:"count"`
	Tourists []TrackingResponse `json:"tourists"`
}

// HistoryResponse DTO для истории местоположений
type HistoryResponse struct {
	CardID  string                   `json:"card_id"`
	Count   int                      `json:"count"`
	History []*models.LocationSample `json:"history"`
}

// PathResponse DTO для маршрута
type PathResponse struct {
	CardID string             `json:"card_id"`
	Path   []models.PathPoint `json:"path"`
}

// AlertResponse DTO для оповещения
// @Description DTO для оповещения
type AlertResponse struct {
	ID             uuid.UUID    `json:"id"`
	CardID         string       `json:"card_id"`
	ZoneID         uuid.UUID    `json:"zone_id"`
	ZoneName       string       `json:"zone_name"`
	AlertType      string       `json:"alert_type"`
	Severity       string       `json:"severity"`
	Message        string       `json:"message"`
	Location       models.Point `json:"location"`
	Acknowledged   bool         `json:"acknowledged"`
	AcknowledgedBy string       `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time   `json:"acknowledged_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// AlertListResponse DTO для списка оповещений
type AlertListResponse struct {
	Count  int             `json:"count"`
	Alerts []AlertResponse `json:"alerts"`
}

// AllowedHoursDTO - интервал разрешенного посещения
type AllowedHoursDTO struct {
	Start string `json:"start" validate:"required,len=5"`
	End   string `json:"end" validate:"required,len=5"`
}

// GeometryDTO - геометрия зоны в запросе
type GeometryDTO struct {
	Type         string       `json:"type" validate:"required,oneof=Circle Polygon"`
	Center       *PositionDTO `json:"center,omitempty"`
	RadiusMeters float64      `json:"radius_meters,omitempty"`
	Ring         []PositionDTO `json:"ring,omitempty"`
}

// CreateGeofenceRequest DTO для создания геозоны
// @Description DTO для создания геозоны
type CreateGeofenceRequest struct {
	Name           string           `json:"name" validate:"required,min=2,max=255"`
	Description    string           `json:"description,omitempty"`
	Type           string           `json:"type" validate:"required,oneof=tourist_zone restricted_area emergency_zone high_traffic monitoring_area facility"`
	Geometry       GeometryDTO      `json:"geometry" validate:"required"`
	MaxCapacity    int              `json:"max_capacity,omitempty" validate:"omitempty,gt=0"`
	AlertThreshold float64          `json:"alert_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
	AllowedHours   *AllowedHoursDTO `json:"allowed_hours,omitempty"`
}

// GeofenceResponse DTO для ответа с геозоной
// @Description DTO для ответа с геозоной
type GeofenceResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Type        string            `json:"type"`
	Geometry    models.Geometry   `json:"geometry"`
	Rules       models.Rules      `json:"rules"`
	Statistics  models.Statistics `json:"statistics"`
	Active      bool              `json:"active"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// GeofenceListResponse DTO для списка геозон
type GeofenceListResponse struct {
	Count     int                `json:"count"`
	Geofences []GeofenceResponse `json:"geofences"`
}

// UpdateStatsRequest DTO для обновления счетчиков зоны
type UpdateStatsRequest struct {
	CurrentOccupancy *int `json:"current_occupancy,omitempty" validate:"omitempty,gte=0"`
	TotalVisitors    *int `json:"total_visitors,omitempty" validate:"omitempty,gte=0"`
}

// CheckPointRequest DTO для проверки вхождения точки в зоны
// @Description DTO для проверки точки
type CheckPointRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// ZoneFlagDTO - нарушение правила зоны
type ZoneFlagDTO struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// ZoneHitDTO - зона, содержащая точку
type ZoneHitDTO struct {
	ZoneID   uuid.UUID     `json:"zone_id"`
	ZoneName string        `json:"zone_name"`
	ZoneType string        `json:"zone_type"`
	Flags    []ZoneFlagDTO `json:"flags,omitempty"`
}

// CheckPointResponse DTO для результата проверки точки
type CheckPointResponse struct {
	Location   models.Point `json:"location"`
	InGeofence bool         `json:"in_geofence"`
	Geofences  []ZoneHitDTO `json:"geofences"`
	Timestamp  time.Time    `json:"timestamp"`
}
