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

type AlertRepository struct {
	db *pgxpool.Pool
}

func NewAlertRepository(db *pgxpool.Pool) service.AlertRepository {
	return &AlertRepository{db: db}
}

const alertColumns = `
	id,
	card_id,
	zone_id,
	zone_name,
	alert_type,
	severity,
	message,
	ST_Y(location::geometry) as latitude,
	ST_X(location::geometry) as longitude,
	acknowledged,
	acknowledged_by,
	acknowledged_at,
	metadata,
	created_at
`

func scanAlert(row pgx.Row) (*models.Alert, error) {
	alert := &models.Alert{}
	var acknowledgedBy *string
	var metadata []byte

	err := row.Scan(
		&alert.ID,
		&alert.CardID,
		&alert.ZoneID,
		&alert.ZoneName,
		&alert.AlertType,
		&alert.Severity,
		&alert.Message,
		&alert.Location.Latitude,
		&alert.Location.Longitude,
		&alert.Acknowledged,
		&acknowledgedBy,
		&alert.AcknowledgedAt,
		&metadata,
		&alert.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if acknowledgedBy != nil {
		alert.AcknowledgedBy = *acknowledgedBy
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &alert.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal alert metadata: %w", err)
		}
	}
	return alert, nil
}

// CreateDeduped атомарно создает оповещение, только если за окно дедупликации
// не было другого оповещения того же типа по той же паре (card, zone).
// Условная вставка одним запросом: две конкурентные проверки не пройдут обе.
func (r *AlertRepository) CreateDeduped(ctx context.Context, alert *models.Alert, window time.Duration) (bool, error) {
	metadata, err := json.Marshal(alert.Metadata)
	if err != nil {
		return false, fmt.Errorf("failed to marshal alert metadata: %w", err)
	}
	cutoff := alert.CreatedAt.Add(-window)

	query := `
		INSERT INTO geofence_alerts (
			card_id, zone_id, zone_name, alert_type, severity, message, location, metadata, created_at
		)
		SELECT $1, $2, $3, $4, $5, $6, ST_SetSRID(ST_MakePoint($7, $8), 4326)::geography, $9, $10
		WHERE NOT EXISTS (
			SELECT 1 FROM geofence_alerts
			WHERE card_id = $1
				AND zone_id = $2
				AND alert_type = $4
				AND created_at >= $11
		)
		RETURNING id;
	`
	err = r.db.QueryRow(ctx, query,
		alert.CardID,
		alert.ZoneID,
		alert.ZoneName,
		alert.AlertType,
		alert.Severity,
		alert.Message,
		alert.Location.Longitude,
		alert.Location.Latitude,
		metadata,
		alert.CreatedAt,
		cutoff,
	).Scan(&alert.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Оповещение подавлено окном дедупликации
			return false, nil
		}
		return false, fmt.Errorf("%w: failed to create deduped alert: %v", errs.ErrStorage, err)
	}
	return true, nil
}

// Create создает оповещение без дедупликации (нарушения правил зоны)
func (r *AlertRepository) Create(ctx context.Context, alert *models.Alert) error {
	metadata, err := json.Marshal(alert.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal alert metadata: %w", err)
	}

	query := `
		INSERT INTO geofence_alerts (
			card_id, zone_id, zone_name, alert_type, severity, message, location, metadata, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, ST_SetSRID(ST_MakePoint($7, $8), 4326)::geography, $9, $10)
		RETURNING id;
	`
	err = r.db.QueryRow(ctx, query,
		alert.CardID,
		alert.ZoneID,
		alert.ZoneName,
		alert.AlertType,
		alert.Severity,
		alert.Message,
		alert.Location.Longitude,
		alert.Location.Latitude,
		metadata,
		alert.CreatedAt,
	).Scan(&alert.ID)
	if err != nil {
		return fmt.Errorf("%w: failed to create alert: %v", errs.ErrStorage, err)
	}
	return nil
}

// Acknowledge идемпотентно подтверждает оповещение: повторное подтверждение
// не затирает первоначального исполнителя и время
func (r *AlertRepository) Acknowledge(ctx context.Context, id uuid.UUID, actor string) (*models.Alert, error) {
	query := `
		UPDATE geofence_alerts SET
			acknowledged = TRUE,
			acknowledged_by = COALESCE(acknowledged_by, $2),
			acknowledged_at = COALESCE(acknowledged_at, NOW())
		WHERE id = $1
		RETURNING ` + alertColumns + `;
	`
	alert, err := scanAlert(r.db.QueryRow(ctx, query, id, actor))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: alert %s", errs.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to acknowledge alert: %v", errs.ErrStorage, err)
	}
	return alert, nil
}

// List возвращает оповещения с фильтрами, новые первыми
func (r *AlertRepository) List(ctx context.Context, acknowledged *bool, severity string, limit int) ([]*models.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM geofence_alerts
		WHERE ($1::boolean IS NULL OR acknowledged = $1)
			AND ($2 = '' OR severity = $2)
		ORDER BY created_at DESC
		LIMIT $3;
	`
	rows, err := r.db.Query(ctx, query, acknowledged, severity, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list alerts: %v", errs.ErrStorage, err)
	}
	defer rows.Close()

	return collectAlerts(rows)
}

// ByCard возвращает оповещения по карте, новые первыми
func (r *AlertRepository) ByCard(ctx context.Context, cardID string, limit int) ([]*models.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM geofence_alerts
		WHERE card_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := r.db.Query(ctx, query, cardID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list alerts by card: %v", errs.ErrStorage, err)
	}
	defer rows.Close()

	return collectAlerts(rows)
}

// CriticalSince возвращает неподтвержденные критические оповещения с момента since
func (r *AlertRepository) CriticalSince(ctx context.Context, since time.Time) ([]*models.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM geofence_alerts
		WHERE severity = 'critical'
			AND acknowledged = FALSE
			AND created_at >= $1
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list critical alerts: %v", errs.ErrStorage, err)
	}
	defer rows.Close()

	return collectAlerts(rows)
}

func collectAlerts(rows pgx.Rows) ([]*models.Alert, error) {
	alerts := make([]*models.Alert, 0)
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error alert iteration: %v", errs.ErrStorage, err)
	}
	return alerts, nil
}
