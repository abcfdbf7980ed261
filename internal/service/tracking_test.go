package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_tracking_system/internal/config"
	"github.com/shenikar/tourist_tracking_system/internal/errs"
	"github.com/shenikar/tourist_tracking_system/internal/models"
	"github.com/shenikar/tourist_tracking_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeClock - детерминированные часы для тестов
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func testConfig() *config.Config {
	return &config.Config{
		AlertDedupWindow:    5 * time.Minute,
		CriticalThreshold:   0.9,
		HistoryDefaultLimit: 100,
		PathDefaultLimit:    50,
	}
}

// newTestTrackingService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestTrackingService(t *testing.T) (*trackingService, *mocks.MockTrackingRepository, *mocks.MockHistoryRepository, *mocks.MockGeofenceService, *mocks.MockAlertService, *fakeClock) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockTrackingRepository(ctrl)
	historyMock := mocks.NewMockHistoryRepository(ctrl)
	geofenceMock := mocks.NewMockGeofenceService(ctrl)
	alertMock := mocks.NewMockAlertService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	clk := &fakeClock{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	service := NewTrackingService(repoMock, historyMock, geofenceMock, alertMock, logger, testConfig(), clk)
	return service.(*trackingService), repoMock, historyMock, geofenceMock, alertMock, clk
}

func TestLink_Success(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _, clk := newTestTrackingService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().
		GetByCardID(ctx, "CARD-001").
		Return(nil, errs.ErrNotLinked).
		Times(1)
	repoMock.EXPECT().
		Upsert(ctx, gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	rec, err := service.Link(ctx, "CARD-001", "contact-42", models.TouristInfo{Name: "Иван Петров"}, nil)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "CARD-001", rec.CardID)
	assert.Equal(t, models.StatusActive, rec.Status)
	assert.True(t, rec.CardIssued)
	assert.Equal(t, clk.now, rec.IssuedAt)
	assert.Nil(t, rec.ReturnedAt)
}

func TestLink_WithInitialPosition(t *testing.T) {
	// Подготовка
	service, repoMock, historyMock, _, _, clk := newTestTrackingService(t)
	ctx := context.Background()
	initial := &models.Point{Latitude: 55.7558, Longitude: 37.6173}

	// Ожидания
	repoMock.EXPECT().GetByCardID(ctx, "CARD-002").Return(nil, errs.ErrNotLinked)
	repoMock.EXPECT().Upsert(ctx, gomock.Any()).Return(nil)
	historyMock.EXPECT().
		Append(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, sample *models.LocationSample) error {
			assert.Equal(t, "CARD-002", sample.CardID)
			assert.Equal(t, *initial, sample.Position)
			assert.Equal(t, models.SourceManual, sample.Source)
			assert.Equal(t, clk.now, sample.RecordedAt)
			return nil
		})

	// Действие
	rec, err := service.Link(ctx, "CARD-002", "contact-1", models.TouristInfo{}, initial)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, initial, rec.CurrentPosition)
}

func TestLink_AlreadyActive(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _, _ := newTestTrackingService(t)
	ctx := context.Background()

	// Ожидания: карта уже в обороте
	repoMock.EXPECT().
		GetByCardID(ctx, "CARD-003").
		Return(&models.TrackingRecord{CardID: "CARD-003", CardIssued: true}, nil)

	// Действие
	rec, err := service.Link(ctx, "CARD-003", "contact-2", models.TouristInfo{}, nil)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrAlreadyActive)
	assert.Nil(t, rec)
}

func TestLink_ReissueAfterReturn(t *testing.T) {
	// Подготовка: карта была возвращена, повторная выдача допустима
	service, repoMock, _, _, _, _ := newTestTrackingService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().
		GetByCardID(ctx, "CARD-004").
		Return(&models.TrackingRecord{CardID: "CARD-004", CardIssued: false, Status: models.StatusInactive}, nil)
	repoMock.EXPECT().Upsert(ctx, gomock.Any()).Return(nil)

	// Действие
	rec, err := service.Link(ctx, "CARD-004", "contact-3", models.TouristInfo{Name: "Новый турист"}, nil)

	// Проверки
	require.NoError(t, err)
	assert.True(t, rec.CardIssued)
	assert.Equal(t, models.StatusActive, rec.Status)
	assert.Empty(t, rec.ActiveZoneIDs)
	assert.Empty(t, rec.RecentAlerts)
}

func TestUpdateLocation_InvalidCoordinates(t *testing.T) {
	// Подготовка
	service, _, _, _, _, _ := newTestTrackingService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		lat, lon float64
	}{
		{"широта за пределами диапазона", 95.0, 37.0},
		{"долгота за пределами диапазона", 55.0, 200.0},
		{"обе координаты некорректны", -120.0, -300.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Действие
			_, _, err := service.UpdateLocation(ctx, &models.LocationSample{
				CardID:   "CARD-010",
				Position: models.Point{Latitude: tt.lat, Longitude: tt.lon},
			})

			// Проверки
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrInvalidCoordinates)
		})
	}
}

func TestUpdateLocation_NotLinked(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _, _ := newTestTrackingService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().
		GetByCardID(ctx, "UNKNOWN").
		Return(nil, errs.ErrNotLinked)

	// Действие
	_, _, err := service.UpdateLocation(ctx, &models.LocationSample{
		CardID:   "UNKNOWN",
		Position: models.Point{Latitude: 55.0, Longitude: 37.0},
	})

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotLinked)
}

func TestUpdateLocation_NoZones(t *testing.T) {
	// Подготовка
	service, repoMock, historyMock, geofenceMock, alertMock, clk := newTestTrackingService(t)
	ctx := context.Background()
	position := models.Point{Latitude: 55.7558, Longitude: 37.6173}
	rec := &models.TrackingRecord{CardID: "CARD-020", Status: models.StatusActive, CardIssued: true}

	// Ожидания
	repoMock.EXPECT().GetByCardID(ctx, "CARD-020").Return(rec, nil)
	geofenceMock.EXPECT().EvaluatePoint(ctx, position).Return([]models.ZoneHit{}, nil)
	repoMock.EXPECT().UpdatePosition(ctx, "CARD-020", position, []uuid.UUID{}, clk.now).Return(nil)
	alertMock.EXPECT().OnContainment(ctx, rec, position, []models.ZoneHit{}).Return([]*models.Alert{}, nil)
	historyMock.EXPECT().Append(ctx, gomock.Any()).Return(nil)

	// Действие
	updated, alerts, err := service.UpdateLocation(ctx, &models.LocationSample{
		CardID:   "CARD-020",
		Position: position,
	})

	// Проверки
	require.NoError(t, err)
	assert.Empty(t, alerts)
	assert.Equal(t, models.StatusActive, updated.Status)
	assert.Equal(t, &position, updated.CurrentPosition)
	assert.Equal(t, clk.now, updated.LastUpdatedAt)
}

func TestUpdateLocation_BreachMarksSuspicious(t *testing.T) {
	// Подготовка
	service, repoMock, historyMock, geofenceMock, alertMock, clk := newTestTrackingService(t)
	ctx := context.Background()
	position := models.Point{Latitude: 55.7558, Longitude: 37.6173}
	zoneID := uuid.New()
	zone := &models.Geofence{ID: zoneID, Name: "Военный объект", Type: models.ZoneRestricted}
	rec := &models.TrackingRecord{CardID: "CARD-021", Status: models.StatusActive, CardIssued: true}
	hits := []models.ZoneHit{{Zone: zone}}
	breach := &models.Alert{
		CardID:    "CARD-021",
		ZoneID:    zoneID,
		AlertType: models.AlertBreach,
		Severity:  models.SeverityCritical,
		Message:   "Tourist entered restricted zone: Военный объект",
		CreatedAt: clk.now,
	}

	// Ожидания
	repoMock.EXPECT().GetByCardID(ctx, "CARD-021").Return(rec, nil)
	geofenceMock.EXPECT().EvaluatePoint(ctx, position).Return(hits, nil)
	repoMock.EXPECT().UpdatePosition(ctx, "CARD-021", position, []uuid.UUID{zoneID}, clk.now).Return(nil)
	// Вход в новую зону увеличивает занятость
	geofenceMock.EXPECT().AdjustOccupancy(ctx, zoneID, 1).Return(nil)
	alertMock.EXPECT().OnContainment(ctx, rec, position, hits).Return([]*models.Alert{breach}, nil)
	repoMock.EXPECT().AppendRecentAlert(ctx, "CARD-021", models.RecentAlert{
		Type:      models.AlertBreach,
		Message:   breach.Message,
		Timestamp: clk.now,
	}).Return(nil)
	repoMock.EXPECT().SetStatus(ctx, "CARD-021", models.StatusSuspicious, clk.now).Return(nil)
	historyMock.EXPECT().Append(ctx, gomock.Any()).Return(nil)

	// Действие
	updated, alerts, err := service.UpdateLocation(ctx, &models.LocationSample{
		CardID:   "CARD-021",
		Position: position,
	})

	// Проверки
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.StatusSuspicious, updated.Status)
}

func TestUpdateLocation_BreachDoesNotDowngradeEmergency(t *testing.T) {
	// Подготовка: турист в статусе emergency, вторжение не понижает статус
	service, repoMock, historyMock, geofenceMock, alertMock, clk := newTestTrackingService(t)
	ctx := context.Background()
	position := models.Point{Latitude: 55.7558, Longitude: 37.6173}
	zoneID := uuid.New()
	zone := &models.Geofence{ID: zoneID, Name: "Запретная зона", Type: models.ZoneRestricted}
	rec := &models.TrackingRecord{
		CardID:        "CARD-022",
		Status:        models.StatusEmergency,
		CardIssued:    true,
		ActiveZoneIDs: []uuid.UUID{zoneID},
	}
	hits := []models.ZoneHit{{Zone: zone}}
	breach := &models.Alert{CardID: "CARD-022", ZoneID: zoneID, AlertType: models.AlertBreach, CreatedAt: clk.now}

	// Ожидания: SetStatus не вызывается, занятость не меняется (зона не новая)
	repoMock.EXPECT().GetByCardID(ctx, "CARD-022").Return(rec, nil)
	geofenceMock.EXPECT().EvaluatePoint(ctx, position).Return(hits, nil)
	repoMock.EXPECT().UpdatePosition(ctx, "CARD-022", position, []uuid.UUID{zoneID}, clk.now).Return(nil)
	alertMock.EXPECT().OnContainment(ctx, rec, position, hits).Return([]*models.Alert{breach}, nil)
	repoMock.EXPECT().AppendRecentAlert(ctx, "CARD-022", gomock.Any()).Return(nil)
	historyMock.EXPECT().Append(ctx, gomock.Any()).Return(nil)

	// Действие
	updated, _, err := service.UpdateLocation(ctx, &models.LocationSample{
		CardID:   "CARD-022",
		Position: position,
	})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusEmergency, updated.Status)
}

func TestUpdateLocation_OccupancyOnZoneTransition(t *testing.T) {
	// Подготовка: турист покидает одну зону и входит в другую
	service, repoMock, historyMock, geofenceMock, alertMock, clk := newTestTrackingService(t)
	ctx := context.Background()
	position := models.Point{Latitude: 55.7558, Longitude: 37.6173}
	oldZone := uuid.New()
	newZone := uuid.New()
	zone := &models.Geofence{ID: newZone, Name: "Парк", Type: models.ZoneTourist}
	rec := &models.TrackingRecord{
		CardID:        "CARD-023",
		Status:        models.StatusActive,
		CardIssued:    true,
		ActiveZoneIDs: []uuid.UUID{oldZone},
	}
	hits := []models.ZoneHit{{Zone: zone}}

	// Ожидания
	repoMock.EXPECT().GetByCardID(ctx, "CARD-023").Return(rec, nil)
	geofenceMock.EXPECT().EvaluatePoint(ctx, position).Return(hits, nil)
	repoMock.EXPECT().UpdatePosition(ctx, "CARD-023", position, []uuid.UUID{newZone}, clk.now).Return(nil)
	geofenceMock.EXPECT().AdjustOccupancy(ctx, newZone, 1).Return(nil)
	geofenceMock.EXPECT().AdjustOccupancy(ctx, oldZone, -1).Return(nil)
	alertMock.EXPECT().OnContainment(ctx, rec, position, hits).Return([]*models.Alert{}, nil)
	historyMock.EXPECT().Append(ctx, gomock.Any()).Return(nil)

	// Действие
	_, _, err := service.UpdateLocation(ctx, &models.LocationSample{
		CardID:   "CARD-023",
		Position: position,
	})

	// Проверки
	require.NoError(t, err)
}

func TestUpdateLocation_DefaultsSourceToGPS(t *testing.T) {
	// Подготовка
	service, repoMock, historyMock, geofenceMock, alertMock, _ := newTestTrackingService(t)
	ctx := context.Background()
	position := models.Point{Latitude: 10.0, Longitude: 20.0}
	rec := &models.TrackingRecord{CardID: "CARD-024", Status: models.StatusActive, CardIssued: true}

	// Ожидания
	repoMock.EXPECT().GetByCardID(ctx, "CARD-024").Return(rec, nil)
	geofenceMock.EXPECT().EvaluatePoint(ctx, position).Return([]models.ZoneHit{}, nil)
	repoMock.EXPECT().UpdatePosition(ctx, "CARD-024", position, gomock.Any(), gomock.Any()).Return(nil)
	alertMock.EXPECT().OnContainment(ctx, rec, position, gomock.Any()).Return(nil, nil)
	historyMock.EXPECT().
		Append(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, sample *models.LocationSample) error {
			assert.Equal(t, models.SourceGPS, sample.Source)
			return nil
		})

	// Действие
	_, _, err := service.UpdateLocation(ctx, &models.LocationSample{
		CardID:   "CARD-024",
		Position: position,
		Source:   "unknown-source",
	})

	// Проверки
	require.NoError(t, err)
}

func TestReturnCard_Success(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _, clk := newTestTrackingService(t)
	ctx := context.Background()
	rec := &models.TrackingRecord{CardID: "CARD-030", CardIssued: true, Status: models.StatusActive}

	// Ожидания
	repoMock.EXPECT().GetByCardID(ctx, "CARD-030").Return(rec, nil)
	repoMock.EXPECT().CloseCard(ctx, "CARD-030", clk.now).Return(nil)

	// Действие
	returned, err := service.ReturnCard(ctx, "CARD-030")

	// Проверки
	require.NoError(t, err)
	assert.False(t, returned.CardIssued)
	assert.Equal(t, models.StatusInactive, returned.Status)
	require.NotNil(t, returned.ReturnedAt)
	assert.Equal(t, clk.now, *returned.ReturnedAt)
}

func TestReturnCard_Idempotent(t *testing.T) {
	// Подготовка: карта уже возвращена
	service, repoMock, _, _, _, _ := newTestTrackingService(t)
	ctx := context.Background()
	returnedAt := time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
	rec := &models.TrackingRecord{
		CardID:     "CARD-031",
		CardIssued: false,
		Status:     models.StatusInactive,
		ReturnedAt: &returnedAt,
	}

	// Ожидания: CloseCard не вызывается повторно
	repoMock.EXPECT().GetByCardID(ctx, "CARD-031").Return(rec, nil)

	// Действие
	returned, err := service.ReturnCard(ctx, "CARD-031")

	// Проверки
	require.NoError(t, err)
	assert.False(t, returned.CardIssued)
	assert.Equal(t, &returnedAt, returned.ReturnedAt)
}

func TestReturnCard_NeverLinked(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _, _ := newTestTrackingService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().GetByCardID(ctx, "GHOST").Return(nil, errs.ErrNotLinked)

	// Действие
	_, err := service.ReturnCard(ctx, "GHOST")

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotLinked)
}

func TestSetStatus_UnknownStatus(t *testing.T) {
	// Подготовка
	service, _, _, _, _, _ := newTestTrackingService(t)

	// Действие
	_, err := service.SetStatus(context.Background(), "CARD-040", "vanished", "")

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestSetStatus_DismissEmergencyRequiresReason(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _, _ := newTestTrackingService(t)
	ctx := context.Background()
	rec := &models.TrackingRecord{CardID: "CARD-041", Status: models.StatusEmergency, CardIssued: true}

	// Ожидания
	repoMock.EXPECT().GetByCardID(ctx, "CARD-041").Return(rec, nil)

	// Действие: сброс emergency без причины
	_, err := service.SetStatus(ctx, "CARD-041", models.StatusActive, "")

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrReasonRequired)
}

func TestSetStatus_DismissEmergencyWithReason(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _, clk := newTestTrackingService(t)
	ctx := context.Background()
	rec := &models.TrackingRecord{CardID: "CARD-042", Status: models.StatusEmergency, CardIssued: true}

	// Ожидания
	repoMock.EXPECT().GetByCardID(ctx, "CARD-042").Return(rec, nil)
	repoMock.EXPECT().SetStatus(ctx, "CARD-042", models.StatusActive, clk.now).Return(nil)
	repoMock.EXPECT().AppendRecentAlert(ctx, "CARD-042", models.RecentAlert{
		Type:      "status_change",
		Message:   "false alarm confirmed by patrol",
		Timestamp: clk.now,
	}).Return(nil)

	// Действие
	updated, err := service.SetStatus(ctx, "CARD-042", models.StatusActive, "false alarm confirmed by patrol")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, updated.Status)
}

func TestSetStatus_EmergencyEscalation(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _, clk := newTestTrackingService(t)
	ctx := context.Background()
	rec := &models.TrackingRecord{CardID: "CARD-043", Status: models.StatusActive, CardIssued: true}

	// Ожидания
	repoMock.EXPECT().GetByCardID(ctx, "CARD-043").Return(rec, nil)
	repoMock.EXPECT().SetStatus(ctx, "CARD-043", models.StatusEmergency, clk.now).Return(nil)

	// Действие
	updated, err := service.SetStatus(ctx, "CARD-043", models.StatusEmergency, "")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusEmergency, updated.Status)
}

func TestHistory_RangeTakesPrecedence(t *testing.T) {
	// Подготовка
	service, repoMock, historyMock, _, _, _ := newTestTrackingService(t)
	ctx := context.Background()
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	expected := []*models.LocationSample{{ID: 1, CardID: "CARD-050"}}

	// Ожидания
	repoMock.EXPECT().GetByCardID(ctx, "CARD-050").Return(&models.TrackingRecord{CardID: "CARD-050"}, nil)
	historyMock.EXPECT().QueryRange(ctx, "CARD-050", start, end).Return(expected, nil)

	// Действие
	samples, err := service.History(ctx, "CARD-050", 10, &start, &end)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, samples)
}

func TestHistory_DefaultLimit(t *testing.T) {
	// Подготовка
	service, repoMock, historyMock, _, _, _ := newTestTrackingService(t)
	ctx := context.Background()

	// Ожидания: нулевой лимит заменяется значением из конфигурации
	repoMock.EXPECT().GetByCardID(ctx, "CARD-051").Return(&models.TrackingRecord{CardID: "CARD-051"}, nil)
	historyMock.EXPECT().Query(ctx, "CARD-051", 100).Return([]*models.LocationSample{}, nil)

	// Действие
	_, err := service.History(ctx, "CARD-051", 0, nil, nil)

	// Проверки
	require.NoError(t, err)
}

func TestNearby_InvalidPoint(t *testing.T) {
	// Подготовка
	service, _, _, _, _, _ := newTestTrackingService(t)

	// Действие
	_, err := service.Nearby(context.Background(), models.Point{Latitude: 91, Longitude: 0}, 1000)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidCoordinates)
}

func TestNearby_NullIslandIsValid(t *testing.T) {
	// Подготовка: (0, 0) - легальная координата
	service, repoMock, _, _, _, _ := newTestTrackingService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().
		FindNearby(ctx, models.Point{Latitude: 0, Longitude: 0}, 1000.0).
		Return([]*models.TrackingRecord{}, nil)

	// Действие
	records, err := service.Nearby(ctx, models.Point{Latitude: 0, Longitude: 0}, 1000)

	// Проверки
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNearby_DefaultRadius(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _, _ := newTestTrackingService(t)
	ctx := context.Background()

	// Ожидания: неположительный радиус заменяется на 5000 м
	repoMock.EXPECT().
		FindNearby(ctx, gomock.Any(), 5000.0).
		Return([]*models.TrackingRecord{}, nil)

	// Действие
	_, err := service.Nearby(ctx, models.Point{Latitude: 55.0, Longitude: 37.0}, 0)

	// Проверки
	require.NoError(t, err)
}

func TestListTourists_UnknownStatus(t *testing.T) {
	// Подготовка
	service, _, _, _, _, _ := newTestTrackingService(t)

	// Действие
	_, err := service.ListTourists(context.Background(), "lost", 10)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
}
