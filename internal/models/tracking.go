package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы записи отслеживания туриста
const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusSuspicious = "suspicious"
	StatusEmergency  = "emergency"
)

// RecentAlertLimit - сколько последних оповещений хранится в записи отслеживания
const RecentAlertLimit = 20

// ValidStatus проверяет, что статус входит в перечень допустимых
func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusSuspicious, StatusEmergency:
		return true
	}
	return false
}

// TouristInfo - дополнительная информация о туристе
type TouristInfo struct {
	Name             string `json:"name,omitempty"`
	Email            string `json:"email,omitempty"`
	Nationality      string `json:"nationality,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
}

// RecentAlert - запись в кратком журнале оповещений туриста
type RecentAlert struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// TrackingRecord представляет запись отслеживания по выданной карте.
// На одну карту (card_id) существует не более одной записи.
type TrackingRecord struct {
	CardID          string        `json:"card_id"`
	ContactID       string        `json:"contact_id"`
	TouristInfo     TouristInfo   `json:"tourist_info"`
	CurrentPosition *Point        `json:"current_position,omitempty"`
	Status          string        `json:"status"`
	CardIssued      bool          `json:"card_issued"`
	IssuedAt        time.Time     `json:"issued_at"`
	ReturnedAt      *time.Time    `json:"returned_at,omitempty"`
	LastUpdatedAt   time.Time     `json:"last_updated_at"`
	ActiveZoneIDs   []uuid.UUID   `json:"active_zone_ids,omitempty"`
	RecentAlerts    []RecentAlert `json:"recent_alerts,omitempty"`
}
