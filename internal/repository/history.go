package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/tourist_tracking_system/internal/errs"
	"github.com/shenikar/tourist_tracking_system/internal/models"
	"github.com/shenikar/tourist_tracking_system/internal/service"
)

type HistoryRepository struct {
	db *pgxpool.Pool
}

func NewHistoryRepository(db *pgxpool.Pool) service.HistoryRepository {
	return &HistoryRepository{db: db}
}

// Append сохраняет запись истории местоположений.
// Журнал только пополняется, записи никогда не изменяются.
func (r *HistoryRepository) Append(ctx context.Context, sample *models.LocationSample) error {
	var deviceInfo []byte
	if sample.DeviceInfo != nil {
		var err error
		deviceInfo, err = json.Marshal(sample.DeviceInfo)
		if err != nil {
			return fmt.Errorf("failed to marshal device info: %w", err)
		}
	}

	query := `
		INSERT INTO location_history (
			card_id, location, accuracy, altitude, speed, heading, source, device_info, recorded_at
		)
		VALUES ($1, ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		sample.CardID,
		sample.Position.Longitude,
		sample.Position.Latitude,
		sample.Accuracy,
		sample.Altitude,
		sample.Speed,
		sample.Heading,
		sample.Source,
		deviceInfo,
		sample.RecordedAt,
	).Scan(&sample.ID)
	if err != nil {
		return fmt.Errorf("%w: failed to append location sample: %v", errs.ErrStorage, err)
	}
	return nil
}

const historyColumns = `
	id,
	card_id,
	ST_Y(location::geometry) as latitude,
	ST_X(location::geometry) as longitude,
	accuracy,
	altitude,
	speed,
	heading,
	source,
	device_info,
	recorded_at
`

func scanSample(row pgx.Row) (*models.LocationSample, error) {
	sample := &models.LocationSample{}
	var deviceInfo []byte

	err := row.Scan(
		&sample.ID,
		&sample.CardID,
		&sample.Position.Latitude,
		&sample.Position.Longitude,
		&sample.Accuracy,
		&sample.Altitude,
		&sample.Speed,
		&sample.Heading,
		&sample.Source,
		&deviceInfo,
		&sample.RecordedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(deviceInfo) > 0 {
		sample.DeviceInfo = &models.DeviceInfo{}
		if err := json.Unmarshal(deviceInfo, sample.DeviceInfo); err != nil {
			return nil, fmt.Errorf("failed to unmarshal device info: %w", err)
		}
	}
	return sample, nil
}

func (r *HistoryRepository) querySamples(ctx context.Context, query string, args ...any) ([]*models.LocationSample, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query location history: %v", errs.ErrStorage, err)
	}
	defer rows.Close()

	samples := make([]*models.LocationSample, 0)
	for rows.Next() {
		sample, err := scanSample(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location sample row: %w", err)
		}
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error history iteration: %v", errs.ErrStorage, err)
	}
	return samples, nil
}

// Query возвращает историю местоположений карты, новые записи первыми
func (r *HistoryRepository) Query(ctx context.Context, cardID string, limit int) ([]*models.LocationSample, error) {
	query := `
		SELECT ` + historyColumns + `
		FROM location_history
		WHERE card_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2;
	`
	return r.querySamples(ctx, query, cardID, limit)
}

// QueryRange возвращает историю в границах интервала, новые записи первыми
func (r *HistoryRepository) QueryRange(ctx context.Context, cardID string, start, end time.Time) ([]*models.LocationSample, error) {
	query := `
		SELECT ` + historyColumns + `
		FROM location_history
		WHERE card_id = $1
			AND recorded_at >= $2
			AND recorded_at <= $3
		ORDER BY recorded_at DESC;
	`
	return r.querySamples(ctx, query, cardID, start, end)
}

// Path возвращает упрощенный маршрут для отрисовки, от старых точек к новым
func (r *HistoryRepository) Path(ctx context.Context, cardID string, limit int) ([]models.PathPoint, error) {
	query := `
		SELECT latitude, longitude, recorded_at
		FROM (
			SELECT
				ST_Y(location::geometry) as latitude,
				ST_X(location::geometry) as longitude,
				recorded_at
			FROM location_history
			WHERE card_id = $1
			ORDER BY recorded_at DESC
			LIMIT $2
		) recent
		ORDER BY recorded_at ASC;
	`
	rows, err := r.db.Query(ctx, query, cardID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query path: %v", errs.ErrStorage, err)
	}
	defer rows.Close()

	path := make([]models.PathPoint, 0)
	for rows.Next() {
		var pt models.PathPoint
		if err := rows.Scan(&pt.Latitude, &pt.Longitude, &pt.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan path row: %w", err)
		}
		path = append(path, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error path iteration: %v", errs.ErrStorage, err)
	}
	return path, nil
}
