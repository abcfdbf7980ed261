package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/tourist_tracking_system/internal/errs"
	"github.com/shenikar/tourist_tracking_system/internal/models"
	"github.com/shenikar/tourist_tracking_system/internal/service"
)

type TrackingRepository struct {
	db *pgxpool.Pool
}

func NewTrackingRepository(db *pgxpool.Pool) service.TrackingRepository {
	return &TrackingRepository{db: db}
}

const trackingColumns = `
	card_id,
	contact_id,
	tourist_name,
	tourist_email,
	nationality,
	emergency_contact,
	ST_Y(location::geometry) as latitude,
	ST_X(location::geometry) as longitude,
	status,
	card_issued,
	issued_at,
	returned_at,
	last_updated,
	active_zone_ids,
	recent_alerts
`

// scanTrackingRecord читает строку записи отслеживания
func scanTrackingRecord(row pgx.Row) (*models.TrackingRecord, error) {
	rec := &models.TrackingRecord{}
	var lat, lon *float64
	var zoneIDs, recentAlerts []byte

	err := row.Scan(
		&rec.CardID,
		&rec.ContactID,
		&rec.TouristInfo.Name,
		&rec.TouristInfo.Email,
		&rec.TouristInfo.Nationality,
		&rec.TouristInfo.EmergencyContact,
		&lat,
		&lon,
		&rec.Status,
		&rec.CardIssued,
		&rec.IssuedAt,
		&rec.ReturnedAt,
		&rec.LastUpdatedAt,
		&zoneIDs,
		&recentAlerts,
	)
	if err != nil {
		return nil, err
	}

	if lat != nil && lon != nil {
		rec.CurrentPosition = &models.Point{Latitude: *lat, Longitude: *lon}
	}
	if len(zoneIDs) > 0 {
		if err := json.Unmarshal(zoneIDs, &rec.ActiveZoneIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal active zone ids: %w", err)
		}
	}
	if len(recentAlerts) > 0 {
		if err := json.Unmarshal(recentAlerts, &rec.RecentAlerts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recent alerts: %w", err)
		}
	}
	return rec, nil
}

// GetByCardID возвращает запись отслеживания по идентификатору карты
func (r *TrackingRepository) GetByCardID(ctx context.Context, cardID string) (*models.TrackingRecord, error) {
	query := `SELECT ` + trackingColumns + ` FROM tracking_records WHERE card_id = $1;`

	rec, err := scanTrackingRecord(r.db.QueryRow(ctx, query, cardID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: card %s", errs.ErrNotLinked, cardID)
		}
		return nil, fmt.Errorf("%w: failed to get tracking record: %v", errs.ErrStorage, err)
	}
	return rec, nil
}

// Upsert создает запись отслеживания или переоформляет существующую при повторной выдаче карты
func (r *TrackingRepository) Upsert(ctx context.Context, rec *models.TrackingRecord) error {
	query := `
		INSERT INTO tracking_records (
			card_id, contact_id, tourist_name, tourist_email, nationality, emergency_contact,
			location, status, card_issued, issued_at, returned_at, last_updated,
			active_zone_ids, recent_alerts
		)
		VALUES (
			$1, $2, $3, $4, $5, $6,
			CASE WHEN $7::float8 IS NULL THEN NULL
			     ELSE ST_SetSRID(ST_MakePoint($8::float8, $7::float8), 4326)::geography END,
			$9, TRUE, $10, NULL, $10, '[]'::jsonb, '[]'::jsonb
		)
		ON CONFLICT (card_id) DO UPDATE SET
			contact_id = EXCLUDED.contact_id,
			tourist_name = EXCLUDED.tourist_name,
			tourist_email = EXCLUDED.tourist_email,
			nationality = EXCLUDED.nationality,
			emergency_contact = EXCLUDED.emergency_contact,
			location = EXCLUDED.location,
			status = EXCLUDED.status,
			card_issued = TRUE,
			issued_at = EXCLUDED.issued_at,
			returned_at = NULL,
			last_updated = EXCLUDED.last_updated,
			active_zone_ids = '[]'::jsonb,
			recent_alerts = '[]'::jsonb;
	`
	var lat, lon *float64
	if rec.CurrentPosition != nil {
		lat = &rec.CurrentPosition.Latitude
		lon = &rec.CurrentPosition.Longitude
	}

	_, err := r.db.Exec(ctx, query,
		rec.CardID,
		rec.ContactID,
		rec.TouristInfo.Name,
		rec.TouristInfo.Email,
		rec.TouristInfo.Nationality,
		rec.TouristInfo.EmergencyContact,
		lat,
		lon,
		rec.Status,
		rec.IssuedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to upsert tracking record: %v", errs.ErrStorage, err)
	}
	return nil
}

// UpdatePosition обновляет позицию и кэш текущих зон записи отслеживания
func (r *TrackingRepository) UpdatePosition(ctx context.Context, cardID string, p models.Point, zoneIDs []uuid.UUID, updatedAt time.Time) error {
	if zoneIDs == nil {
		zoneIDs = []uuid.UUID{}
	}
	zonesJSON, err := json.Marshal(zoneIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal zone ids: %w", err)
	}

	query := `
		UPDATE tracking_records SET
			location = ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography,
			active_zone_ids = $4,
			last_updated = $5
		WHERE card_id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, cardID, p.Longitude, p.Latitude, zonesJSON, updatedAt)
	if err != nil {
		return fmt.Errorf("%w: failed to update position: %v", errs.ErrStorage, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: card %s", errs.ErrNotLinked, cardID)
	}
	return nil
}

// SetStatus обновляет статус записи отслеживания
func (r *TrackingRepository) SetStatus(ctx context.Context, cardID, status string, updatedAt time.Time) error {
	query := `
		UPDATE tracking_records SET
			status = $2,
			last_updated = $3
		WHERE card_id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, cardID, status, updatedAt)
	if err != nil {
		return fmt.Errorf("%w: failed to set status: %v", errs.ErrStorage, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: card %s", errs.ErrNotLinked, cardID)
	}
	return nil
}

// CloseCard закрывает запись при возврате карты
func (r *TrackingRepository) CloseCard(ctx context.Context, cardID string, returnedAt time.Time) error {
	query := `
		UPDATE tracking_records SET
			card_issued = FALSE,
			returned_at = $2,
			status = 'inactive',
			active_zone_ids = '[]'::jsonb,
			last_updated = $2
		WHERE card_id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, cardID, returnedAt)
	if err != nil {
		return fmt.Errorf("%w: failed to close tracking record: %v", errs.ErrStorage, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: card %s", errs.ErrNotLinked, cardID)
	}
	return nil
}

// AppendRecentAlert добавляет запись в краткий журнал оповещений, новые первыми,
// с ограничением длины журнала
func (r *TrackingRepository) AppendRecentAlert(ctx context.Context, cardID string, alert models.RecentAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal recent alert: %w", err)
	}

	query := `
		UPDATE tracking_records SET
			recent_alerts = (
				SELECT COALESCE(jsonb_agg(elem), '[]'::jsonb)
				FROM (
					SELECT elem
					FROM jsonb_array_elements(jsonb_build_array($2::jsonb) || recent_alerts)
						WITH ORDINALITY AS t(elem, ord)
					ORDER BY ord
					LIMIT $3
				) trimmed
			)
		WHERE card_id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, cardID, payload, models.RecentAlertLimit)
	if err != nil {
		return fmt.Errorf("%w: failed to append recent alert: %v", errs.ErrStorage, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: card %s", errs.ErrNotLinked, cardID)
	}
	return nil
}

// List возвращает записи с выданными картами, свежие обновления первыми
func (r *TrackingRepository) List(ctx context.Context, status string, limit int) ([]*models.TrackingRecord, error) {
	query := `
		SELECT ` + trackingColumns + `
		FROM tracking_records
		WHERE card_issued = TRUE
			AND ($1 = '' OR status = $1)
		ORDER BY last_updated DESC
		LIMIT $2;
	`
	rows, err := r.db.Query(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list tracking records: %v", errs.ErrStorage, err)
	}
	defer rows.Close()

	records := make([]*models.TrackingRecord, 0)
	for rows.Next() {
		rec, err := scanTrackingRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tracking record row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error list iteration: %v", errs.ErrStorage, err)
	}
	return records, nil
}

// FindNearby находит активных туристов с выданными картами в радиусе, ближние первыми
func (r *TrackingRepository) FindNearby(ctx context.Context, p models.Point, maxDistanceMeters float64) ([]*models.TrackingRecord, error) {
	query := `
		SELECT ` + trackingColumns + `
		FROM tracking_records
		WHERE
			status = 'active'
			AND card_issued = TRUE
			AND location IS NOT NULL
			AND ST_DWithin(
				location,
				ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
				$3
			)
		ORDER BY ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography);
	`
	rows, err := r.db.Query(ctx, query, p.Longitude, p.Latitude, maxDistanceMeters)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find nearby tourists: %v", errs.ErrStorage, err)
	}
	defer rows.Close()

	records := make([]*models.TrackingRecord, 0)
	for rows.Next() {
		rec, err := scanTrackingRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tracking record row in FindNearby: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error list iteration in FindNearby: %v", errs.ErrStorage, err)
	}
	return records, nil
}
