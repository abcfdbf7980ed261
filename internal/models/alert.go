package models

import (
	"time"

	"github.com/google/uuid"
)

// Типы оповещений
const (
	AlertEntry           = "entry"
	AlertExit            = "exit"
	AlertBreach          = "breach"
	AlertCapacity        = "capacity_exceeded"
	AlertTimeRestriction = "time_restriction"
)

// Уровни важности оповещений
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// AlertMetadata - сведения о туристе на момент создания оповещения
type AlertMetadata struct {
	TouristName string `json:"tourist_name,omitempty"`
	ContactID   string `json:"contact_id,omitempty"`
	Nationality string `json:"nationality,omitempty"`
}

// Alert - оповещение о нарушении зоны. Создаётся только движком оповещений;
// после создания меняется только полями подтверждения.
type Alert struct {
	ID             uuid.UUID     `json:"id"`
	CardID         string        `json:"card_id"`
	ZoneID         uuid.UUID     `json:"zone_id"`
	ZoneName       string        `json:"zone_name"`
	AlertType      string        `json:"alert_type"`
	Severity       string        `json:"severity"`
	Message        string        `json:"message"`
	Location       Point         `json:"location"`
	Acknowledged   bool          `json:"acknowledged"`
	AcknowledgedBy string        `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time    `json:"acknowledged_at,omitempty"`
	Metadata       AlertMetadata `json:"metadata"`
	CreatedAt      time.Time     `json:"created_at"`
}
