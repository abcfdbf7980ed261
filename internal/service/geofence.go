package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_tracking_system/internal/config"
	"github.com/shenikar/tourist_tracking_system/internal/errs"
	"github.com/shenikar/tourist_tracking_system/internal/geo"
	"github.com/shenikar/tourist_tracking_system/internal/models"
	"github.com/shenikar/tourist_tracking_system/pkg/clock"
	"github.com/sirupsen/logrus"
)

// GeofenceRepository определяет контракт для работы с бд геозон
type GeofenceRepository interface {
	Create(ctx context.Context, zone *models.Geofence) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Geofence, error)
	List(ctx context.Context, active *bool, zoneType string) ([]*models.Geofence, error)
	ListActive(ctx context.Context) ([]*models.Geofence, error)
	AdjustOccupancy(ctx context.Context, id uuid.UUID, delta int) error
	UpdateStats(ctx context.Context, id uuid.UUID, currentOccupancy, totalVisitors *int) error
	CountAlertsByType(ctx context.Context, id uuid.UUID) (map[string]int, error)
}

// GeofenceService определяет контракт для бизнес-логики каталога геозон
type GeofenceService interface {
	CreateGeofence(ctx context.Context, zone *models.Geofence) error
	GetGeofence(ctx context.Context, id uuid.UUID) (*models.Geofence, error)
	ListGeofences(ctx context.Context, active *bool, zoneType string) ([]*models.Geofence, error)
	UpdateStats(ctx context.Context, id uuid.UUID, currentOccupancy, totalVisitors *int) (*models.Geofence, error)
	Analytics(ctx context.Context, id uuid.UUID) (*models.ZoneAnalytics, error)
	EvaluatePoint(ctx context.Context, p models.Point) ([]models.ZoneHit, error)
	AdjustOccupancy(ctx context.Context, id uuid.UUID, delta int) error
}

type geofenceService struct {
	repo   GeofenceRepository
	logger *logrus.Logger
	cfg    *config.Config
	clock  clock.Clock
}

func NewGeofenceService(repo GeofenceRepository, logger *logrus.Logger, cfg *config.Config, clk clock.Clock) GeofenceService {
	return &geofenceService{
		repo:   repo,
		logger: logger,
		cfg:    cfg,
		clock:  clk,
	}
}

// CreateGeofence валидирует геометрию и создает зону
func (s *geofenceService) CreateGeofence(ctx context.Context, zone *models.Geofence) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "geofence",
		"method":  "CreateGeofence",
		"name":    zone.Name,
	})

	if err := validateGeometry(zone.Geometry); err != nil {
		log.WithError(err).Warn("Geofence geometry validation failed")
		return err
	}
	if zone.Rules.AlertThreshold < 0 || zone.Rules.AlertThreshold > 1 {
		return fmt.Errorf("%w: alert_threshold must be in [0,1]", errs.ErrValidation)
	}
	if zone.Rules.AlertThreshold == 0 {
		zone.Rules.AlertThreshold = 0.8
	}

	zone.Active = true
	if err := s.repo.Create(ctx, zone); err != nil {
		log.WithError(err).Error("Failed to create geofence in repository")
		return fmt.Errorf("service: could not create geofence: %w", err)
	}

	log.WithField("zone_id", zone.ID).Info("Geofence created successfully")
	return nil
}

// GetGeofence получает зону по ID
func (s *geofenceService) GetGeofence(ctx context.Context, id uuid.UUID) (*models.Geofence, error) {
	zone, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "geofence",
			"method":  "GetGeofence",
			"zone_id": id,
		}).WithError(err).Warn("Failed to get geofence")
		return nil, fmt.Errorf("service: could not get geofence: %w", err)
	}
	return zone, nil
}

// ListGeofences возвращает зоны с фильтрами по активности и классификации
func (s *geofenceService) ListGeofences(ctx context.Context, active *bool, zoneType string) ([]*models.Geofence, error) {
	if zoneType != "" && !models.ValidZoneType(zoneType) {
		return nil, fmt.Errorf("%w: unknown zone type %q", errs.ErrValidation, zoneType)
	}

	zones, err := s.repo.List(ctx, active, zoneType)
	if err != nil {
		s.logger.WithField("service", "geofence").WithError(err).Error("Failed to list geofences")
		return nil, fmt.Errorf("service: could not list geofences: %w", err)
	}
	return zones, nil
}

// UpdateStats обновляет счетчики посещаемости зоны (для внешних систем мониторинга)
func (s *geofenceService) UpdateStats(ctx context.Context, id uuid.UUID, currentOccupancy, totalVisitors *int) (*models.Geofence, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "geofence",
		"method":  "UpdateStats",
		"zone_id": id,
	})

	if currentOccupancy != nil && *currentOccupancy < 0 {
		return nil, fmt.Errorf("%w: current_occupancy must be >= 0", errs.ErrValidation)
	}
	if totalVisitors != nil && *totalVisitors < 0 {
		return nil, fmt.Errorf("%w: total_visitors must be >= 0", errs.ErrValidation)
	}

	if err := s.repo.UpdateStats(ctx, id, currentOccupancy, totalVisitors); err != nil {
		log.WithError(err).Error("Failed to update geofence statistics")
		return nil, fmt.Errorf("service: could not update statistics: %w", err)
	}

	zone, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not reload geofence: %w", err)
	}
	log.Info("Geofence statistics updated successfully")
	return zone, nil
}

// Analytics возвращает сводку по зоне: счетчики оповещений и загрузку
func (s *geofenceService) Analytics(ctx context.Context, id uuid.UUID) (*models.ZoneAnalytics, error) {
	zone, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get geofence: %w", err)
	}

	byType, err := s.repo.CountAlertsByType(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not count alerts: %w", err)
	}

	analytics := &models.ZoneAnalytics{
		ZoneID:       zone.ID,
		ZoneName:     zone.Name,
		ZoneType:     zone.Type,
		AlertsByType: byType,
	}
	if zone.Rules.MaxCapacity > 0 {
		rate := float64(zone.Statistics.CurrentOccupancy) / float64(zone.Rules.MaxCapacity)
		analytics.UtilizationRate = &rate
	}
	return analytics, nil
}

// EvaluatePoint определяет активные зоны, содержащие точку, и нарушения их правил.
// Проверка вхождения выполняется в Go по точной формуле на случай любых
// расхождений с индексами хранилища: результат должен совпадать с неиндексированным.
func (s *geofenceService) EvaluatePoint(ctx context.Context, p models.Point) ([]models.ZoneHit, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: latitude %.4f, longitude %.4f", errs.ErrInvalidCoordinates, p.Latitude, p.Longitude)
	}

	zones, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.WithField("service", "geofence").WithError(err).Error("Failed to load active geofences")
		return nil, fmt.Errorf("service: could not load active geofences: %w", err)
	}

	now := s.clock.Now()
	hits := make([]models.ZoneHit, 0)
	for _, zone := range zones {
		if !contains(zone.Geometry, p) {
			continue
		}
		hits = append(hits, models.ZoneHit{
			Zone:  zone,
			Flags: s.evaluateRules(zone, now),
		})
	}
	return hits, nil
}

// AdjustOccupancy атомарно меняет занятость зоны на delta
func (s *geofenceService) AdjustOccupancy(ctx context.Context, id uuid.UUID, delta int) error {
	if err := s.repo.AdjustOccupancy(ctx, id, delta); err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "geofence",
			"zone_id": id,
			"delta":   delta,
		}).WithError(err).Error("Failed to adjust occupancy")
		return fmt.Errorf("service: could not adjust occupancy: %w", err)
	}
	return nil
}

// contains проверяет вхождение точки в геометрию зоны
func contains(g models.Geometry, p models.Point) bool {
	switch g.Type {
	case models.GeometryCircle:
		if g.Center == nil {
			return false
		}
		return geo.InCircle(p, *g.Center, g.RadiusMeters)
	case models.GeometryPolygon:
		return geo.InPolygon(p, g.Ring)
	}
	return false
}

// evaluateRules проверяет правила зоны: разрешённые часы и вместимость
func (s *geofenceService) evaluateRules(zone *models.Geofence, now time.Time) []models.RuleFlag {
	var flags []models.RuleFlag

	if zone.Rules.AllowedHours != nil {
		current := now.Format("15:04")
		start := zone.Rules.AllowedHours.Start
		end := zone.Rules.AllowedHours.End
		if current < start || current > end {
			flags = append(flags, models.RuleFlag{
				Type:     models.AlertTimeRestriction,
				Severity: models.SeverityMedium,
				Message:  fmt.Sprintf("Access outside allowed hours (%s - %s)", start, end),
			})
		}
	}

	if zone.Rules.MaxCapacity > 0 && zone.Statistics.CurrentOccupancy > 0 {
		rate := float64(zone.Statistics.CurrentOccupancy) / float64(zone.Rules.MaxCapacity)
		if rate >= zone.Rules.AlertThreshold {
			severity := models.SeverityMedium
			if rate >= s.cfg.CriticalThreshold {
				severity = models.SeverityHigh
			}
			flags = append(flags, models.RuleFlag{
				Type:     models.AlertCapacity,
				Severity: severity,
				Message:  fmt.Sprintf("High occupancy: %d%% of capacity", int(math.Round(rate*100))),
			})
		}
	}
	return flags
}

// validateGeometry отклоняет вырожденные геометрии на этапе создания зоны
func validateGeometry(g models.Geometry) error {
	switch g.Type {
	case models.GeometryCircle:
		if g.Center == nil || !g.Center.Valid() {
			return fmt.Errorf("%w: circle geometry requires a valid center point", errs.ErrValidation)
		}
		if g.RadiusMeters <= 0 {
			return fmt.Errorf("%w: circle geometry requires a positive radius in meters", errs.ErrValidation)
		}
	case models.GeometryPolygon:
		if len(g.Ring) < 3 {
			return fmt.Errorf("%w: polygon ring requires at least 3 points", errs.ErrValidation)
		}
		for _, pt := range g.Ring {
			if !pt.Valid() {
				return fmt.Errorf("%w: polygon ring contains invalid coordinates", errs.ErrValidation)
			}
		}
	default:
		return fmt.Errorf("%w: unknown geometry type %q", errs.ErrValidation, g.Type)
	}
	return nil
}
