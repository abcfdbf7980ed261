package v1

import (
	"time"

	"github.com/shenikar/tourist_tracking_system/internal/models"
)

// ModelToTrackingResponse преобразует запись отслеживания в DTO для ответа
func ModelToTrackingResponse(rec *models.TrackingRecord) TrackingResponse {
	return TrackingResponse{
		CardID:          rec.CardID,
		ContactID:       rec.ContactID,
		TouristInfo:     rec.TouristInfo,
		Location:        rec.CurrentPosition,
		Status:          rec.Status,
		CardIssued:      rec.CardIssued,
		IssuedAt:        rec.IssuedAt,
		ReturnedAt:      rec.ReturnedAt,
		LastUpdated:     rec.LastUpdatedAt,
		RecentAlerts:    rec.RecentAlerts,
		ActiveZoneCount: len(rec.ActiveZoneIDs),
	}
}

// ModelsToTouristList преобразует слайс записей в DTO списка
func ModelsToTouristList(records []*models.TrackingRecord) TouristListResponse {
	tourists := make([]TrackingResponse, len(records))
	for i, rec := range records {
		tourists[i] = ModelToTrackingResponse(rec)
	}
	return TouristListResponse{Count: len(tourists), Tourists: tourists}
}

// ModelToAlertResponse преобразует оповещение в DTO для ответа
func ModelToAlertResponse(alert *models.Alert) AlertResponse {
	return AlertResponse{
		ID:             alert.ID,
		CardID:         alert.CardID,
		ZoneID:         alert.ZoneID,
		ZoneName:       alert.ZoneName,
		AlertType:      alert.AlertType,
		Severity:       alert.Severity,
		Message:        alert.Message,
		Location:       alert.Location,
		Acknowledged:   alert.Acknowledged,
		AcknowledgedBy: alert.AcknowledgedBy,
		AcknowledgedAt: alert.AcknowledgedAt,
		CreatedAt:      alert.CreatedAt,
	}
}

// ModelsToAlertList преобразует слайс оповещений в DTO списка
func ModelsToAlertList(alerts []*models.Alert) AlertListResponse {
	responses := make([]AlertResponse, len(alerts))
	for i, alert := range alerts {
		responses[i] = ModelToAlertResponse(alert)
	}
	return AlertListResponse{Count: len(responses), Alerts: responses}
}

// DTOToGeofenceModel преобразует DTO создания геозоны в доменную модель
func DTOToGeofenceModel(dto CreateGeofenceRequest, createdBy string) *models.Geofence {
	zone := &models.Geofence{
		Name:        dto.Name,
		Description: dto.Description,
		Type:        dto.Type,
		Geometry: models.Geometry{
			Type:         dto.Geometry.Type,
			RadiusMeters: dto.Geometry.RadiusMeters,
		},
		Rules: models.Rules{
			MaxCapacity:    dto.MaxCapacity,
			AlertThreshold: dto.AlertThreshold,
		},
		CreatedBy: createdBy,
	}
	if dto.Geometry.Center != nil {
		zone.Geometry.Center = &models.Point{
			Latitude:  *dto.Geometry.Center.Latitude,
			Longitude: *dto.Geometry.Center.Longitude,
		}
	}
	for _, pt := range dto.Geometry.Ring {
		zone.Geometry.Ring = append(zone.Geometry.Ring, models.Point{
			Latitude:  *pt.Latitude,
			Longitude: *pt.Longitude,
		})
	}
	if dto.AllowedHours != nil {
		zone.Rules.AllowedHours = &models.AllowedHours{
			Start: dto.AllowedHours.Start,
			End:   dto.AllowedHours.End,
		}
	}
	return zone
}

// ModelToGeofenceResponse преобразует геозону в DTO для ответа
func ModelToGeofenceResponse(zone *models.Geofence) GeofenceResponse {
	return GeofenceResponse{
		ID:          zone.ID,
		Name:        zone.Name,
		Description: zone.Description,
		Type:        zone.Type,
		Geometry:    zone.Geometry,
		Rules:       zone.Rules,
		Statistics:  zone.Statistics,
		Active:      zone.Active,
		CreatedAt:   zone.CreatedAt,
		UpdatedAt:   zone.UpdatedAt,
	}
}

// ModelsToGeofenceList преобразует слайс геозон в DTO списка
func ModelsToGeofenceList(zones []*models.Geofence) GeofenceListResponse {
	responses := make([]GeofenceResponse, len(zones))
	for i, zone := range zones {
		responses[i] = ModelToGeofenceResponse(zone)
	}
	return GeofenceListResponse{Count: len(responses), Geofences: responses}
}

// HitsToCheckResponse преобразует результат проверки точки в DTO
func HitsToCheckResponse(p models.Point, hits []models.ZoneHit, now time.Time) CheckPointResponse {
	zones := make([]ZoneHitDTO, len(hits))
	for i, hit := range hits {
		dto := ZoneHitDTO{
			ZoneID:   hit.Zone.ID,
			ZoneName: hit.Zone.Name,
			ZoneType: hit.Zone.Type,
		}
		for _, flag := range hit.Flags {
			dto.Flags = append(dto.Flags, ZoneFlagDTO{
				Type:     flag.Type,
				Severity: flag.Severity,
				Message:  flag.Message,
			})
		}
		zones[i] = dto
	}
	return CheckPointResponse{
		Location:   p,
		InGeofence: len(zones) > 0,
		Geofences:  zones,
		Timestamp:  now,
	}
}
