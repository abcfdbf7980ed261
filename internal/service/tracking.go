package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_tracking_system/internal/config"
	"github.com/shenikar/tourist_tracking_system/internal/errs"
	"github.com/shenikar/tourist_tracking_system/internal/models"
	"github.com/shenikar/tourist_tracking_system/pkg/clock"
	"github.com/sirupsen/logrus"
)

// TrackingRepository определяет контракт для работы с бд записей отслеживания
type TrackingRepository interface {
	GetByCardID(ctx context.Context, cardID string) (*models.TrackingRecord, error)
	Upsert(ctx context.Context, rec *models.TrackingRecord) error
	UpdatePosition(ctx context.Context, cardID string, p models.Point, zoneIDs []uuid.UUID, updatedAt time.Time) error
	SetStatus(ctx context.Context, cardID, status string, updatedAt time.Time) error
	CloseCard(ctx context.Context, cardID string, returnedAt time.Time) error
	AppendRecentAlert(ctx context.Context, cardID string, alert models.RecentAlert) error
	List(ctx context.Context, status string, limit int) ([]*models.TrackingRecord, error)
	FindNearby(ctx context.Context, p models.Point, maxDistanceMeters float64) ([]*models.TrackingRecord, error)
}

// HistoryRepository определяет контракт журнала истории местоположений
type HistoryRepository interface {
	Append(ctx context.Context, sample *models.LocationSample) error
	Query(ctx context.Context, cardID string, limit int) ([]*models.LocationSample, error)
	QueryRange(ctx context.Context, cardID string, start, end time.Time) ([]*models.LocationSample, error)
	Path(ctx context.Context, cardID string, limit int) ([]models.PathPoint, error)
}

// TrackingService определяет контракт движка отслеживания туристов
type TrackingService interface {
	Link(ctx context.Context, cardID, contactID string, info models.TouristInfo, initial *models.Point) (*models.TrackingRecord, error)
	UpdateLocation(ctx context.Context, sample *models.LocationSample) (*models.TrackingRecord, []*models.Alert, error)
	ReturnCard(ctx context.Context, cardID string) (*models.TrackingRecord, error)
	SetStatus(ctx context.Context, cardID, status, reason string) (*models.TrackingRecord, error)
	GetTourist(ctx context.Context, cardID string) (*models.TrackingRecord, error)
	ListTourists(ctx context.Context, status string, limit int) ([]*models.TrackingRecord, error)
	History(ctx context.Context, cardID string, limit int, start, end *time.Time) ([]*models.LocationSample, error)
	Path(ctx context.Context, cardID string, limit int) ([]models.PathPoint, error)
	Nearby(ctx context.Context, p models.Point, maxDistanceMeters float64) ([]*models.TrackingRecord, error)
}

type trackingService struct {
	repo      TrackingRepository
	history   HistoryRepository
	geofences GeofenceService
	alerts    AlertService
	logger    *logrus.Logger
	cfg       *config.Config
	clock     clock.Clock

	// Мьютексы по card_id: обновления одной карты сериализуются,
	// разные карты обрабатываются параллельно
	cardLocks sync.Map
}

func NewTrackingService(
	repo TrackingRepository,
	history HistoryRepository,
	geofences GeofenceService,
	alerts AlertService,
	logger *logrus.Logger,
	cfg *config.Config,
	clk clock.Clock,
) TrackingService {
	return &trackingService{
		repo:      repo,
		history:   history,
		geofences: geofences,
		alerts:    alerts,
		logger:    logger,
		cfg:       cfg,
		clock:     clk,
	}
}

func (s *trackingService) lockCard(cardID string) func() {
	v, _ := s.cardLocks.LoadOrStore(cardID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Link привязывает карту к туристу и активирует отслеживание
func (s *trackingService) Link(ctx context.Context, cardID, contactID string, info models.TouristInfo, initial *models.Point) (*models.TrackingRecord, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "tracking",
		"method":  "Link",
		"card_id": cardID,
	})
	log.Info("Linking card to tourist")

	unlock := s.lockCard(cardID)
	defer unlock()

	existing, err := s.repo.GetByCardID(ctx, cardID)
	if err != nil && !errors.Is(err, errs.ErrNotLinked) {
		log.WithError(err).Error("Failed to check existing tracking record")
		return nil, fmt.Errorf("service: could not check existing record: %w", err)
	}
	if existing != nil && existing.CardIssued {
		log.Warn("Card is already in circulation")
		return nil, fmt.Errorf("%w: card %s is already in use", errs.ErrAlreadyActive, cardID)
	}

	if initial != nil && !initial.Valid() {
		return nil, fmt.Errorf("%w: initial position out of range", errs.ErrInvalidCoordinates)
	}

	now := s.clock.Now()
	rec := &models.TrackingRecord{
		CardID:          cardID,
		ContactID:       contactID,
		TouristInfo:     info,
		CurrentPosition: initial,
		Status:          models.StatusActive,
		CardIssued:      true,
		IssuedAt:        now,
		LastUpdatedAt:   now,
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		log.WithError(err).Error("Failed to upsert tracking record")
		return nil, fmt.Errorf("service: could not link card: %w", err)
	}

	if initial != nil {
		sample := &models.LocationSample{
			CardID:     cardID,
			Position:   *initial,
			Source:     models.SourceManual,
			RecordedAt: now,
		}
		if err := s.history.Append(ctx, sample); err != nil {
			log.WithError(err).Error("Failed to append initial location sample")
			return nil, fmt.Errorf("service: could not record initial location: %w", err)
		}
	}

	log.Info("Card linked successfully")
	return rec, nil
}

// UpdateLocation обновляет позицию туриста, прогоняет проверку вхождения в зоны
// и отдает созданные оповещения. Вся цепочка для одной карты атомарна
// относительно конкурентных обновлений той же карты.
func (s *trackingService) UpdateLocation(ctx context.Context, sample *models.LocationSample) (*models.TrackingRecord, []*models.Alert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "tracking",
		"method":  "UpdateLocation",
		"card_id": sample.CardID,
	})

	if !sample.Position.Valid() {
		log.Warn("Rejected out-of-range coordinates")
		return nil, nil, fmt.Errorf("%w: latitude %.4f, longitude %.4f",
			errs.ErrInvalidCoordinates, sample.Position.Latitude, sample.Position.Longitude)
	}

	unlock := s.lockCard(sample.CardID)
	defer unlock()

	rec, err := s.repo.GetByCardID(ctx, sample.CardID)
	if err != nil {
		log.WithError(err).Warn("Tracking record not found")
		return nil, nil, fmt.Errorf("service: could not load tracking record: %w", err)
	}

	hits, err := s.geofences.EvaluatePoint(ctx, sample.Position)
	if err != nil {
		return nil, nil, fmt.Errorf("service: containment evaluation failed: %w", err)
	}

	now := s.clock.Now()
	containedIDs := make([]uuid.UUID, 0, len(hits))
	containedSet := make(map[uuid.UUID]struct{}, len(hits))
	for _, hit := range hits {
		containedIDs = append(containedIDs, hit.Zone.ID)
		containedSet[hit.Zone.ID] = struct{}{}
	}

	if err := s.repo.UpdatePosition(ctx, sample.CardID, sample.Position, containedIDs, now); err != nil {
		log.WithError(err).Error("Failed to update position")
		return nil, nil, fmt.Errorf("service: could not update position: %w", err)
	}

	if err := s.adjustOccupancy(ctx, rec.ActiveZoneIDs, containedSet, hits); err != nil {
		log.WithError(err).Error("Failed to adjust zone occupancy")
		return nil, nil, fmt.Errorf("service: could not adjust occupancy: %w", err)
	}

	alerts, err := s.alerts.OnContainment(ctx, rec, sample.Position, hits)
	if err != nil {
		log.WithError(err).Error("Alert engine failed")
		return nil, nil, err
	}

	for _, alert := range alerts {
		if alert.AlertType != models.AlertBreach {
			continue
		}
		if err := s.repo.AppendRecentAlert(ctx, sample.CardID, models.RecentAlert{
			Type:      alert.AlertType,
			Message:   alert.Message,
			Timestamp: alert.CreatedAt,
		}); err != nil {
			return nil, nil, fmt.Errorf("service: could not append recent alert: %w", err)
		}
		// Вторжение переводит active в suspicious; emergency не понижается
		if rec.Status == models.StatusActive {
			if err := s.repo.SetStatus(ctx, sample.CardID, models.StatusSuspicious, now); err != nil {
				return nil, nil, fmt.Errorf("service: could not update status: %w", err)
			}
			rec.Status = models.StatusSuspicious
		}
	}

	sample.Source = defaultSource(sample.Source)
	sample.RecordedAt = now
	if err := s.history.Append(ctx, sample); err != nil {
		log.WithError(err).Error("Failed to append location sample")
		return nil, nil, fmt.Errorf("service: could not append location sample: %w", err)
	}

	rec.CurrentPosition = &sample.Position
	rec.LastUpdatedAt = now
	rec.ActiveZoneIDs = containedIDs

	log.WithField("alerts_emitted", len(alerts)).Debug("Location updated")
	return rec, alerts, nil
}

// adjustOccupancy применяет дельты занятости по вошедшим и покинутым зонам
func (s *trackingService) adjustOccupancy(ctx context.Context, previous []uuid.UUID, contained map[uuid.UUID]struct{}, hits []models.ZoneHit) error {
	previousSet := make(map[uuid.UUID]struct{}, len(previous))
	for _, id := range previous {
		previousSet[id] = struct{}{}
	}

	for _, hit := range hits {
		if _, ok := previousSet[hit.Zone.ID]; !ok {
			if err := s.geofences.AdjustOccupancy(ctx, hit.Zone.ID, 1); err != nil {
				return err
			}
		}
	}
	for _, id := range previous {
		if _, ok := contained[id]; !ok {
			if err := s.geofences.AdjustOccupancy(ctx, id, -1); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReturnCard закрывает запись отслеживания при возврате карты. Идемпотентна:
// повторный вызов возвращает уже закрытую запись без ошибки.
func (s *trackingService) ReturnCard(ctx context.Context, cardID string) (*models.TrackingRecord, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "tracking",
		"method":  "ReturnCard",
		"card_id": cardID,
	})

	unlock := s.lockCard(cardID)
	defer unlock()

	rec, err := s.repo.GetByCardID(ctx, cardID)
	if err != nil {
		log.WithError(err).Warn("Tracking record not found for return")
		return nil, fmt.Errorf("service: could not load tracking record: %w", err)
	}

	if !rec.CardIssued {
		log.Info("Card already returned, nothing to do")
		return rec, nil
	}

	now := s.clock.Now()
	if err := s.repo.CloseCard(ctx, cardID, now); err != nil {
		log.WithError(err).Error("Failed to close tracking record")
		return nil, fmt.Errorf("service: could not return card: %w", err)
	}

	rec.CardIssued = false
	rec.ReturnedAt = &now
	rec.Status = models.StatusInactive
	rec.LastUpdatedAt = now

	log.Info("Card returned successfully")
	return rec, nil
}

// SetStatus - административная смена статуса. Переход emergency -> active
// без явной причины запрещен, чтобы исключить молчаливый сброс тревоги.
func (s *trackingService) SetStatus(ctx context.Context, cardID, status, reason string) (*models.TrackingRecord, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "tracking",
		"method":  "SetStatus",
		"card_id": cardID,
		"status":  status,
	})

	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", errs.ErrValidation, status)
	}

	unlock := s.lockCard(cardID)
	defer unlock()

	rec, err := s.repo.GetByCardID(ctx, cardID)
	if err != nil {
		log.WithError(err).Warn("Tracking record not found for status change")
		return nil, fmt.Errorf("service: could not load tracking record: %w", err)
	}

	if rec.Status == models.StatusEmergency && status == models.StatusActive && reason == "" {
		log.Warn("Attempted to dismiss emergency without a reason")
		return nil, fmt.Errorf("%w: dismissing emergency status requires a reason", errs.ErrReasonRequired)
	}

	now := s.clock.Now()
	if err := s.repo.SetStatus(ctx, cardID, status, now); err != nil {
		log.WithError(err).Error("Failed to set status")
		return nil, fmt.Errorf("service: could not set status: %w", err)
	}

	if reason != "" {
		if err := s.repo.AppendRecentAlert(ctx, cardID, models.RecentAlert{
			Type:      "status_change",
			Message:   reason,
			Timestamp: now,
		}); err != nil {
			return nil, fmt.Errorf("service: could not append status alert: %w", err)
		}
	}

	rec.Status = status
	rec.LastUpdatedAt = now
	log.Info("Status updated successfully")
	return rec, nil
}

// GetTourist возвращает полную запись отслеживания
func (s *trackingService) GetTourist(ctx context.Context, cardID string) (*models.TrackingRecord, error) {
	rec, err := s.repo.GetByCardID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("service: could not get tourist: %w", err)
	}
	return rec, nil
}

// ListTourists возвращает записи с выданными картами, свежие обновления первыми
func (s *trackingService) ListTourists(ctx context.Context, status string, limit int) ([]*models.TrackingRecord, error) {
	if status != "" && !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", errs.ErrValidation, status)
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}

	records, err := s.repo.List(ctx, status, limit)
	if err != nil {
		s.logger.WithField("service", "tracking").WithError(err).Error("Failed to list tourists")
		return nil, fmt.Errorf("service: could not list tourists: %w", err)
	}
	return records, nil
}

// History возвращает историю местоположений, новые записи первыми
func (s *trackingService) History(ctx context.Context, cardID string, limit int, start, end *time.Time) ([]*models.LocationSample, error) {
	if _, err := s.repo.GetByCardID(ctx, cardID); err != nil {
		return nil, fmt.Errorf("service: could not load tracking record: %w", err)
	}

	if start != nil && end != nil {
		samples, err := s.history.QueryRange(ctx, cardID, *start, *end)
		if err != nil {
			return nil, fmt.Errorf("service: could not query history range: %w", err)
		}
		return samples, nil
	}

	if limit < 1 {
		limit = s.cfg.HistoryDefaultLimit
	}
	samples, err := s.history.Query(ctx, cardID, limit)
	if err != nil {
		return nil, fmt.Errorf("service: could not query history: %w", err)
	}
	return samples, nil
}

// Path возвращает упрощенный маршрут, от старых точек к новым
func (s *trackingService) Path(ctx context.Context, cardID string, limit int) ([]models.PathPoint, error) {
	if _, err := s.repo.GetByCardID(ctx, cardID); err != nil {
		return nil, fmt.Errorf("service: could not load tracking record: %w", err)
	}

	if limit < 1 {
		limit = s.cfg.PathDefaultLimit
	}
	path, err := s.history.Path(ctx, cardID, limit)
	if err != nil {
		return nil, fmt.Errorf("service: could not query path: %w", err)
	}
	return path, nil
}

// Nearby возвращает активных туристов в радиусе, ближние первыми
func (s *trackingService) Nearby(ctx context.Context, p models.Point, maxDistanceMeters float64) ([]*models.TrackingRecord, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: latitude %.4f, longitude %.4f", errs.ErrInvalidCoordinates, p.Latitude, p.Longitude)
	}
	if maxDistanceMeters <= 0 {
		maxDistanceMeters = 5000
	}

	records, err := s.repo.FindNearby(ctx, p, maxDistanceMeters)
	if err != nil {
		s.logger.WithField("service", "tracking").WithError(err).Error("Failed to find nearby tourists")
		return nil, fmt.Errorf("service: could not find nearby tourists: %w", err)
	}
	return records, nil
}

func defaultSource(source string) string {
	switch source {
	case models.SourceGPS, models.SourceNetwork, models.SourceManual:
		return source
	}
	return models.SourceGPS
}
