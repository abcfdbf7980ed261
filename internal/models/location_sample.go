package models

import "time"

// Источники данных о местоположении
const (
	SourceGPS     = "gps"
	SourceNetwork = "network"
	SourceManual  = "manual"
)

// DeviceInfo - сведения об устройстве, приславшем координаты
type DeviceInfo struct {
	UserAgent string  `json:"user_agent,omitempty"`
	Platform  string  `json:"platform,omitempty"`
	Battery   float64 `json:"battery,omitempty"`
}

// LocationSample - неизменяемая запись истории местоположений.
// Создаётся при каждом обновлении координат и никогда не редактируется.
type LocationSample struct {
	ID         int64       `json:"id"`
	CardID     string      `json:"card_id"`
	Position   Point       `json:"position"`
	Accuracy   *float64    `json:"accuracy,omitempty"`
	Altitude   *float64    `json:"altitude,omitempty"`
	Speed      *float64    `json:"speed,omitempty"`
	Heading    *float64    `json:"heading,omitempty"`
	Source     string      `json:"source"`
	DeviceInfo *DeviceInfo `json:"device_info,omitempty"`
	RecordedAt time.Time   `json:"recorded_at"`
}

// PathPoint - упрощённая проекция записи истории для отрисовки маршрута
type PathPoint struct {
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	Timestamp time.Time `json:"time"`
}
