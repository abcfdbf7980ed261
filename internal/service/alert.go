package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_tracking_system/internal/config"
	"github.com/shenikar/tourist_tracking_system/internal/models"
	"github.com/shenikar/tourist_tracking_system/internal/webhook"
	"github.com/shenikar/tourist_tracking_system/pkg/clock"
	"github.com/sirupsen/logrus"
)

// AlertRepository определяет контракт для работы с бд оповещений
type AlertRepository interface {
	// CreateDeduped атомарно создает оповещение, если за окно дедупликации
	// не было другого оповещения того же типа по той же паре (card, zone).
	// Возвращает false, если оповещение подавлено.
	CreateDeduped(ctx context.Context, alert *models.Alert, window time.Duration) (bool, error)
	Create(ctx context.Context, alert *models.Alert) error
	Acknowledge(ctx context.Context, id uuid.UUID, actor string) (*models.Alert, error)
	List(ctx context.Context, acknowledged *bool, severity string, limit int) ([]*models.Alert, error)
	ByCard(ctx context.Context, cardID string, limit int) ([]*models.Alert, error)
	CriticalSince(ctx context.Context, since time.Time) ([]*models.Alert, error)
}

// AlertService определяет контракт движка оповещений
type AlertService interface {
	OnContainment(ctx context.Context, rec *models.TrackingRecord, position models.Point, hits []models.ZoneHit) ([]*models.Alert, error)
	Acknowledge(ctx context.Context, id uuid.UUID, actor string) (*models.Alert, error)
	ListAlerts(ctx context.Context, acknowledged *bool, severity string, limit int) ([]*models.Alert, error)
	AlertsByCard(ctx context.Context, cardID string, limit int) ([]*models.Alert, error)
	CriticalRecent(ctx context.Context, hours int) ([]*models.Alert, error)
}

type alertService struct {
	repo      AlertRepository
	logger    *logrus.Logger
	cfg       *config.Config
	clock     clock.Clock
	publisher webhook.AlertPublisher
}

func NewAlertService(repo AlertRepository, logger *logrus.Logger, cfg *config.Config, clk clock.Clock, publisher webhook.AlertPublisher) AlertService {
	return &alertService{
		repo:      repo,
		logger:    logger,
		cfg:       cfg,
		clock:     clk,
		publisher: publisher,
	}
}

// OnContainment создает оповещения по результату проверки вхождения.
// Вторжения в запретные зоны дедуплицируются в пределах окна; нарушения
// правил (часы, вместимость) информационные и повторяются, пока условие
// сохраняется. Ошибка хранилища прерывает весь вызов: успех означает,
// что журнал оповещений согласован с позицией.
func (s *alertService) OnContainment(ctx context.Context, rec *models.TrackingRecord, position models.Point, hits []models.ZoneHit) ([]*models.Alert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "alert",
		"method":  "OnContainment",
		"card_id": rec.CardID,
	})

	metadata := models.AlertMetadata{
		TouristName: rec.TouristInfo.Name,
		ContactID:   rec.ContactID,
		Nationality: rec.TouristInfo.Nationality,
	}

	emitted := make([]*models.Alert, 0)
	for _, hit := range hits {
		zone := hit.Zone

		if zone.Type == models.ZoneRestricted {
			alert := &models.Alert{
				CardID:    rec.CardID,
				ZoneID:    zone.ID,
				ZoneName:  zone.Name,
				AlertType: models.AlertBreach,
				Severity:  models.SeverityCritical,
				Message:   fmt.Sprintf("Tourist entered restricted zone: %s", zone.Name),
				Location:  position,
				Metadata:  metadata,
				CreatedAt: s.clock.Now(),
			}
			created, err := s.repo.CreateDeduped(ctx, alert, s.cfg.AlertDedupWindow)
			if err != nil {
				log.WithError(err).Error("Failed to create breach alert")
				return nil, fmt.Errorf("service: could not create breach alert: %w", err)
			}
			if created {
				log.WithField("zone_id", zone.ID).Warn("Restricted zone breach detected")
				emitted = append(emitted, alert)
			}
		}

		for _, flag := range hit.Flags {
			alert := &models.Alert{
				CardID:    rec.CardID,
				ZoneID:    zone.ID,
				ZoneName:  zone.Name,
				AlertType: flag.Type,
				Severity:  flag.Severity,
				Message:   flag.Message,
				Location:  position,
				Metadata:  metadata,
				CreatedAt: s.clock.Now(),
			}
			if err := s.repo.Create(ctx, alert); err != nil {
				log.WithError(err).Error("Failed to create rule violation alert")
				return nil, fmt.Errorf("service: could not create %s alert: %w", flag.Type, err)
			}
			emitted = append(emitted, alert)
		}
	}

	for _, alert := range emitted {
		event := webhook.AlertEvent{
			CardID:    alert.CardID,
			ZoneID:    alert.ZoneID,
			ZoneName:  alert.ZoneName,
			AlertType: alert.AlertType,
			Severity:  alert.Severity,
			Message:   alert.Message,
			Latitude:  alert.Location.Latitude,
			Longitude: alert.Location.Longitude,
			Timestamp: alert.CreatedAt,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			// Доставка идет через очередь с повторами, сбой публикации не
			// должен откатывать уже записанные оповещения
			log.WithError(err).Error("Failed to publish alert event")
		}
	}

	return emitted, nil
}

// Acknowledge идемпотентно подтверждает оповещение
func (s *alertService) Acknowledge(ctx context.Context, id uuid.UUID, actor string) (*models.Alert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "Acknowledge",
		"alert_id": id,
	})

	alert, err := s.repo.Acknowledge(ctx, id, actor)
	if err != nil {
		log.WithError(err).Warn("Failed to acknowledge alert")
		return nil, fmt.Errorf("service: could not acknowledge alert: %w", err)
	}

	log.WithField("acknowledged_by", actor).Info("Alert acknowledged")
	return alert, nil
}

// ListAlerts возвращает оповещения с фильтрами, новые первыми
func (s *alertService) ListAlerts(ctx context.Context, acknowledged *bool, severity string, limit int) ([]*models.Alert, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	alerts, err := s.repo.List(ctx, acknowledged, severity, limit)
	if err != nil {
		s.logger.WithField("service", "alert").WithError(err).Error("Failed to list alerts")
		return nil, fmt.Errorf("service: could not list alerts: %w", err)
	}
	return alerts, nil
}

// AlertsByCard возвращает оповещения по карте, новые первыми
func (s *alertService) AlertsByCard(ctx context.Context, cardID string, limit int) ([]*models.Alert, error) {
	if limit < 1 || limit > 200 {
		limit = 20
	}

	alerts, err := s.repo.ByCard(ctx, cardID, limit)
	if err != nil {
		s.logger.WithField("service", "alert").WithError(err).Error("Failed to list alerts by card")
		return nil, fmt.Errorf("service: could not list alerts by card: %w", err)
	}
	return alerts, nil
}

// CriticalRecent возвращает неподтвержденные критические оповещения за период
func (s *alertService) CriticalRecent(ctx context.Context, hours int) ([]*models.Alert, error) {
	if hours < 1 {
		hours = 24
	}
	since := s.clock.Now().Add(-time.Duration(hours) * time.Hour)

	alerts, err := s.repo.CriticalSince(ctx, since)
	if err != nil {
		s.logger.WithField("service", "alert").WithError(err).Error("Failed to list critical alerts")
		return nil, fmt.Errorf("service: could not list critical alerts: %w", err)
	}
	return alerts, nil
}
