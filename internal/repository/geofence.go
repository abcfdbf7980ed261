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
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/tourist_tracking_system/internal/errs"
	"github.com/shenikar/tourist_tracking_system/internal/models"
	"github.com/shenikar/tourist_tracking_system/internal/service"
)

const (
	activeZonesCacheKey = "geofences:active"
	activeZonesCacheTTL = 30 * time.Second
)

type GeofenceRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewGeofenceRepository(db *pgxpool.Pool, redisClient *redis.Client) service.GeofenceRepository {
	return &GeofenceRepository{
		db:          db,
		redisClient: redisClient,
	}
}

const geofenceColumns = `
	id,
	name,
	description,
	type,
	geometry,
	max_capacity,
	alert_threshold,
	allowed_start,
	allowed_end,
	total_visitors,
	current_occupancy,
	peak_occupancy,
	stats_updated,
	active,
	created_by,
	created_at,
	updated_at
`

func scanGeofence(row pgx.Row) (*models.Geofence, error) {
	zone := &models.Geofence{}
	var geometry []byte
	var allowedStart, allowedEnd *string

	err := row.Scan(
		&zone.ID,
		&zone.Name,
		&zone.Description,
		&zone.Type,
		&geometry,
		&zone.Rules.MaxCapacity,
		&zone.Rules.AlertThreshold,
		&allowedStart,
		&allowedEnd,
		&zone.Statistics.TotalVisitors,
		&zone.Statistics.CurrentOccupancy,
		&zone.Statistics.PeakOccupancy,
		&zone.Statistics.LastUpdated,
		&zone.Active,
		&zone.CreatedBy,
		&zone.CreatedAt,
		&zone.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(geometry, &zone.Geometry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal geofence geometry: %w", err)
	}
	if allowedStart != nil && allowedEnd != nil {
		zone.Rules.AllowedHours = &models.AllowedHours{Start: *allowedStart, End: *allowedEnd}
	}
	return zone, nil
}

// Create создает новую геозону в бд
func (r *GeofenceRepository) Create(ctx context.Context, zone *models.Geofence) error {
	geometry, err := json.Marshal(zone.Geometry)
	if err != nil {
		return fmt.Errorf("failed to marshal geofence geometry: %w", err)
	}

	var allowedStart, allowedEnd *string
	if zone.Rules.AllowedHours != nil {
		allowedStart = &zone.Rules.AllowedHours.Start
		allowedEnd = &zone.Rules.AllowedHours.End
	}

	query := `
		INSERT INTO geofences (
			name, description, type, geometry, max_capacity, alert_threshold,
			allowed_start, allowed_end, active, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, total_visitors, current_occupancy, peak_occupancy, stats_updated, created_at, updated_at;
	`
	err = r.db.QueryRow(ctx, query,
		zone.Name,
		zone.Description,
		zone.Type,
		geometry,
		zone.Rules.MaxCapacity,
		zone.Rules.AlertThreshold,
		allowedStart,
		allowedEnd,
		zone.Active,
		zone.CreatedBy,
	).Scan(
		&zone.ID,
		&zone.Statistics.TotalVisitors,
		&zone.Statistics.CurrentOccupancy,
		&zone.Statistics.PeakOccupancy,
		&zone.Statistics.LastUpdated,
		&zone.CreatedAt,
		&zone.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to create geofence: %v", errs.ErrStorage, err)
	}

	r.invalidateActiveCache(ctx)
	return nil
}

// GetByID возвращает геозону по её UUID
func (r *GeofenceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Geofence, error) {
	query := `SELECT ` + geofenceColumns + ` FROM geofences WHERE id = $1;`

	zone, err := scanGeofence(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: geofence %s", errs.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to get geofence: %v", errs.ErrStorage, err)
	}
	return zone, nil
}

// List возвращает геозоны с фильтрами по активности и классификации
func (r *GeofenceRepository) List(ctx context.Context, active *bool, zoneType string) ([]*models.Geofence, error) {
	query := `
		SELECT ` + geofenceColumns + `
		FROM geofences
		WHERE ($1::boolean IS NULL OR active = $1)
			AND ($2 = '' OR type = $2)
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, active, zoneType)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list geofences: %v", errs.ErrStorage, err)
	}
	defer rows.Close()

	return collectGeofences(rows)
}

// ListActive возвращает активные геозоны; набор кэшируется в Redis,
// так как читается на каждом обновлении позиции
func (r *GeofenceRepository) ListActive(ctx context.Context) ([]*models.Geofence, error) {
	if cached, err := r.redisClient.Get(ctx, activeZonesCacheKey).Bytes(); err == nil {
		zones := make([]*models.Geofence, 0)
		if err := json.Unmarshal(cached, &zones); err == nil {
			return zones, nil
		}
		// Битый кэш игнорируем и читаем из бд
	}

	query := `
		SELECT ` + geofenceColumns + `
		FROM geofences
		WHERE active = TRUE
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list active geofences: %v", errs.ErrStorage, err)
	}
	defer rows.Close()

	zones, err := collectGeofences(rows)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(zones); err == nil {
		r.redisClient.Set(ctx, activeZonesCacheKey, payload, activeZonesCacheTTL)
	}
	return zones, nil
}

// AdjustOccupancy атомарно меняет текущую занятость зоны, не опускаясь ниже нуля
func (r *GeofenceRepository) AdjustOccupancy(ctx context.Context, id uuid.UUID, delta int) error {
	query := `
		UPDATE geofences SET
			current_occupancy = GREATEST(0, current_occupancy + $2),
			peak_occupancy = GREATEST(peak_occupancy, GREATEST(0, current_occupancy + $2)),
			total_visitors = total_visitors + CASE WHEN $2 > 0 THEN $2 ELSE 0 END,
			stats_updated = NOW(),
			updated_at = NOW()
		WHERE id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("%w: failed to adjust occupancy: %v", errs.ErrStorage, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: geofence %s", errs.ErrNotFound, id)
	}

	r.invalidateActiveCache(ctx)
	return nil
}

// UpdateStats устанавливает счетчики зоны (для внешних систем мониторинга)
func (r *GeofenceRepository) UpdateStats(ctx context.Context, id uuid.UUID, currentOccupancy, totalVisitors *int) error {
	query := `
		UPDATE geofences SET
			current_occupancy = COALESCE($2, current_occupancy),
			peak_occupancy = GREATEST(peak_occupancy, COALESCE($2, current_occupancy)),
			total_visitors = COALESCE($3, total_visitors),
			stats_updated = NOW(),
			updated_at = NOW()
		WHERE id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, id, currentOccupancy, totalVisitors)
	if err != nil {
		return fmt.Errorf("%w: failed to update geofence statistics: %v", errs.ErrStorage, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: geofence %s", errs.ErrNotFound, id)
	}

	r.invalidateActiveCache(ctx)
	return nil
}

// CountAlertsByType возвращает количество оповещений зоны в разрезе типов
func (r *GeofenceRepository) CountAlertsByType(ctx context.Context, id uuid.UUID) (map[string]int, error) {
	query := `
		SELECT alert_type, COUNT(*)
		FROM geofence_alerts
		WHERE zone_id = $1
		GROUP BY alert_type;
	`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to count alerts by type: %v", errs.ErrStorage, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var alertType string
		var count int
		if err := rows.Scan(&alertType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan alert count row: %w", err)
		}
		counts[alertType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error alert count iteration: %v", errs.ErrStorage, err)
	}
	return counts, nil
}

func (r *GeofenceRepository) invalidateActiveCache(ctx context.Context) {
	// Сбой инвалидации не критичен: TTL кэша короткий
	_ = r.redisClient.Del(ctx, activeZonesCacheKey).Err()
}

func collectGeofences(rows pgx.Rows) ([]*models.Geofence, error) {
	zones := make([]*models.Geofence, 0)
	for rows.Next() {
		zone, err := scanGeofence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan geofence row: %w", err)
		}
		zones = append(zones, zone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error geofence iteration: %v", errs.ErrStorage, err)
	}
	return zones, nil
}
