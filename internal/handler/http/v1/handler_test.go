package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
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

// fixedClock - часы с детерминированным "сейчас" для проверки меток времени в ответах
type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

var testHandlerNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*mocks.MockTrackingService, *mocks.MockGeofenceService, *mocks.MockAlertService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	trackingMock := mocks.NewMockTrackingService(ctrl)
	geofenceMock := mocks.NewMockGeofenceService(ctrl)
	alertMock := mocks.NewMockAlertService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys: []string{"test-api-key"},
	}

	handler := NewHandler(trackingMock, geofenceMock, alertMock, logger, cfg, fixedClock{now: testHandlerNow})

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api, cfg, logger)

	return trackingMock, geofenceMock, alertMock, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func TestLinkCard_Success(t *testing.T) {
	trackingMock, _, _, router := newTestHandler(t)
	now := time.Now().UTC()

	trackingMock.EXPECT().
		Link(gomock.Any(), "CARD-001", "contact-1", gomock.Any(), gomock.Any()).
		Return(&models.TrackingRecord{
			CardID:        "CARD-001",
			ContactID:     "contact-1",
			Status:        models.StatusActive,
			CardIssued:    true,
			IssuedAt:      now,
			LastUpdatedAt: now,
		}, nil)

	w := makeRequest(router, "POST", "/api/v1/tracking/link",
		jsonBody(t, gin.H{"card_id": "CARD-001", "contact_id": "contact-1"}))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp TrackingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CARD-001", resp.CardID)
	assert.Equal(t, models.StatusActive, resp.Status)
}

func TestLinkCard_Conflict(t *testing.T) {
	trackingMock, _, _, router := newTestHandler(t)

	trackingMock.EXPECT().
		Link(gomock.Any(), "CARD-002", "contact-1", gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: card CARD-002 is already in use", errs.ErrAlreadyActive))

	w := makeRequest(router, "POST", "/api/v1/tracking/link",
		jsonBody(t, gin.H{"card_id": "CARD-002", "contact_id": "contact-1"}))

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "already_active", resp.Error)
}

func TestLinkCard_MissingFields(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/tracking/link", jsonBody(t, gin.H{"card_id": "CARD-003"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateLocation_Success(t *testing.T) {
	trackingMock, _, _, router := newTestHandler(t)
	now := time.Now().UTC()
	position := models.Point{Latitude: 55.7558, Longitude: 37.6173}

	trackingMock.EXPECT().
		UpdateLocation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sample *models.LocationSample) (*models.TrackingRecord, []*models.Alert, error) {
			assert.Equal(t, "CARD-010", sample.CardID)
			assert.Equal(t, position, sample.Position)
			assert.Equal(t, models.SourceGPS, sample.Source)
			return &models.TrackingRecord{
				CardID:          "CARD-010",
				Status:          models.StatusActive,
				CurrentPosition: &position,
				LastUpdatedAt:   now,
			}, nil, nil
		})

	w := makeRequest(router, "POST", "/api/v1/tracking/location",
		jsonBody(t, gin.H{"card_id": "CARD-010", "latitude": 55.7558, "longitude": 37.6173, "source": "gps"}))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp LocationUpdateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Location updated successfully", resp.Message)
	assert.Equal(t, models.StatusActive, resp.Status)
	assert.Empty(t, resp.Alerts)
}

func TestUpdateLocation_WithBreachAlert(t *testing.T) {
	trackingMock, _, _, router := newTestHandler(t)
	zoneID := uuid.New()

	trackingMock.EXPECT().
		UpdateLocation(gomock.Any(), gomock.Any()).
		Return(
			&models.TrackingRecord{CardID: "CARD-011", Status: models.StatusSuspicious},
			[]*models.Alert{{
				ID:        uuid.New(),
				CardID:    "CARD-011",
				ZoneID:    zoneID,
				ZoneName:  "Запретная зона",
				AlertType: models.AlertBreach,
				Severity:  models.SeverityCritical,
				Message:   "Tourist entered restricted zone: Запретная зона",
			}},
			nil,
		)

	w := makeRequest(router, "POST", "/api/v1/tracking/location",
		jsonBody(t, gin.H{"card_id": "CARD-011", "latitude": 55.0, "longitude": 37.0}))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp LocationUpdateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Alerts, 1)
	assert.Equal(t, models.AlertBreach, resp.Alerts[0].AlertType)
	assert.Equal(t, models.StatusSuspicious, resp.Status)
}

func TestUpdateLocation_NotLinked(t *testing.T) {
	trackingMock, _, _, router := newTestHandler(t)

	trackingMock.EXPECT().
		UpdateLocation(gomock.Any(), gomock.Any()).
		Return(nil, nil, fmt.Errorf("%w: card GHOST", errs.ErrNotLinked))

	w := makeRequest(router, "POST", "/api/v1/tracking/location",
		jsonBody(t, gin.H{"card_id": "GHOST", "latitude": 10.0, "longitude": 10.0}))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateLocation_MissingCoordinates(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/tracking/location",
		jsonBody(t, gin.H{"card_id": "CARD-012"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateLocation_NullIslandPassesValidation(t *testing.T) {
	// (0, 0) не должна отбрасываться валидатором как пустое значение
	trackingMock, _, _, router := newTestHandler(t)

	trackingMock.EXPECT().
		UpdateLocation(gomock.Any(), gomock.Any()).
		Return(&models.TrackingRecord{CardID: "CARD-013", Status: models.StatusActive}, nil, nil)

	w := makeRequest(router, "POST", "/api/v1/tracking/location",
		jsonBody(t, gin.H{"card_id": "CARD-013", "latitude": 0.0, "longitude": 0.0}))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateLocation_StorageErrorIsGeneric(t *testing.T) {
	// Детали внутренних ошибок не протекают в тело ответа
	trackingMock, _, _, router := newTestHandler(t)

	trackingMock.EXPECT().
		UpdateLocation(gomock.Any(), gomock.Any()).
		Return(nil, nil, fmt.Errorf("%w: failed to update position: connection refused at 10.0.0.5", errs.ErrStorage))

	w := makeRequest(router, "POST", "/api/v1/tracking/location",
		jsonBody(t, gin.H{"card_id": "CARD-014", "latitude": 1.0, "longitude": 1.0}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestGetTourist_NotFound(t *testing.T) {
	trackingMock, _, _, router := newTestHandler(t)

	trackingMock.EXPECT().
		GetTourist(gomock.Any(), "GHOST").
		Return(nil, fmt.Errorf("%w: card GHOST", errs.ErrNotLinked))

	w := makeRequest(router, "GET", "/api/v1/tracking/tourist/GHOST", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTourists_Success(t *testing.T) {
	trackingMock, _, _, router := newTestHandler(t)

	trackingMock.EXPECT().
		ListTourists(gomock.Any(), models.StatusActive, 100).
		Return([]*models.TrackingRecord{
			{CardID: "CARD-020", Status: models.StatusActive},
			{CardID: "CARD-021", Status: models.StatusActive},
		}, nil)

	w := makeRequest(router, "GET", "/api/v1/tracking/tourists", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp TouristListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestGetHistory_InvalidStartTime(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/tracking/history/CARD-030?startTime=not-a-date", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHistory_Range(t *testing.T) {
	trackingMock, _, _, router := newTestHandler(t)
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	trackingMock.EXPECT().
		History(gomock.Any(), "CARD-031", 0, &start, &end).
		Return([]*models.LocationSample{{ID: 1, CardID: "CARD-031"}}, nil)

	url := fmt.Sprintf("/api/v1/tracking/history/CARD-031?startTime=%s&endTime=%s",
		start.Format(time.RFC3339), end.Format(time.RFC3339))
	w := makeRequest(router, "GET", url, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestReturnCard_Success(t *testing.T) {
	trackingMock, _, _, router := newTestHandler(t)
	now := time.Now().UTC()

	trackingMock.EXPECT().
		ReturnCard(gomock.Any(), "CARD-040").
		Return(&models.TrackingRecord{
			CardID:     "CARD-040",
			Status:     models.StatusInactive,
			CardIssued: false,
			ReturnedAt: &now,
		}, nil)

	w := makeRequest(router, "POST", "/api/v1/tracking/return", jsonBody(t, gin.H{"card_id": "CARD-040"}))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp TrackingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.CardIssued)
	assert.NotNil(t, resp.ReturnedAt)
}

func TestNearby_Success(t *testing.T) {
	trackingMock, _, _, router := newTestHandler(t)

	trackingMock.EXPECT().
		Nearby(gomock.Any(), models.Point{Latitude: 55.0, Longitude: 37.0}, 1000.0).
		Return([]*models.TrackingRecord{{CardID: "CARD-050", Status: models.StatusActive}}, nil)

	w := makeRequest(router, "POST", "/api/v1/tracking/nearby",
		jsonBody(t, gin.H{"latitude": 55.0, "longitude": 37.0, "max_distance": 1000.0}))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp TouristListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestUpdateStatus_ReasonRequired(t *testing.T) {
	trackingMock, _, _, router := newTestHandler(t)

	trackingMock.EXPECT().
		SetStatus(gomock.Any(), "CARD-060", models.StatusActive, "").
		Return(nil, fmt.Errorf("%w: dismissing emergency status requires a reason", errs.ErrReasonRequired))

	w := makeRequest(router, "PATCH", "/api/v1/tracking/status/CARD-060",
		jsonBody(t, gin.H{"status": "active"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "reason_required", resp.Error)
}

func TestUpdateStatus_UnknownStatusRejectedByValidator(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "PATCH", "/api/v1/tracking/status/CARD-061",
		jsonBody(t, gin.H{"status": "vanished"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAlerts_Filters(t *testing.T) {
	_, _, alertMock, router := newTestHandler(t)

	alertMock.EXPECT().
		ListAlerts(gomock.Any(), gomock.Any(), "critical", 10).
		DoAndReturn(func(_ context.Context, acknowledged *bool, _ string, _ int) ([]*models.Alert, error) {
			require.NotNil(t, acknowledged)
			assert.False(t, *acknowledged)
			return []*models.Alert{}, nil
		})

	w := makeRequest(router, "GET", "/api/v1/tracking/alerts?acknowledged=false&severity=critical&limit=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAcknowledgeAlert_Success(t *testing.T) {
	_, _, alertMock, router := newTestHandler(t)
	alertID := uuid.New()
	ackAt := time.Now().UTC()

	alertMock.EXPECT().
		Acknowledge(gomock.Any(), alertID, "operator-1").
		Return(&models.Alert{
			ID:             alertID,
			Acknowledged:   true,
			AcknowledgedBy: "operator-1",
			AcknowledgedAt: &ackAt,
		}, nil)

	w := makeRequest(router, "PATCH", "/api/v1/tracking/alerts/"+alertID.String()+"/acknowledge",
		jsonBody(t, gin.H{"acknowledged_by": "operator-1"}))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp AlertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Acknowledged)
}

func TestAcknowledgeAlert_BadID(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "PATCH", "/api/v1/tracking/alerts/not-a-uuid/acknowledge",
		jsonBody(t, gin.H{"acknowledged_by": "operator-1"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGeofence_RequiresAPIKey(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/geofences",
		jsonBody(t, gin.H{"name": "Зона", "type": "tourist_zone"}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateGeofence_Success(t *testing.T) {
	_, geofenceMock, _, router := newTestHandler(t)
	zoneID := uuid.New()

	geofenceMock.EXPECT().
		CreateGeofence(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, zone *models.Geofence) error {
			assert.Equal(t, "Старый город", zone.Name)
			assert.Equal(t, models.ZoneRestricted, zone.Type)
			assert.Equal(t, models.GeometryCircle, zone.Geometry.Type)
			zone.ID = zoneID
			zone.Active = true
			return nil
		})

	body := gin.H{
		"name": "Старый город",
		"type": "restricted_area",
		"geometry": gin.H{
			"type":          "Circle",
			"center":        gin.H{"latitude": 55.75, "longitude": 37.61},
			"radius_meters": 400,
		},
	}
	w := makeRequest(router, "POST", "/api/v1/geofences", jsonBody(t, body),
		map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp GeofenceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, zoneID, resp.ID)
}

func TestCreateGeofence_InvalidType(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	body := gin.H{
		"name": "Зона",
		"type": "wormhole",
		"geometry": gin.H{
			"type":          "Circle",
			"center":        gin.H{"latitude": 1.0, "longitude": 1.0},
			"radius_meters": 100,
		},
	}
	w := makeRequest(router, "POST", "/api/v1/geofences", jsonBody(t, body),
		map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckPoint_Success(t *testing.T) {
	_, geofenceMock, _, router := newTestHandler(t)
	zoneID := uuid.New()

	geofenceMock.EXPECT().
		EvaluatePoint(gomock.Any(), models.Point{Latitude: 55.75, Longitude: 37.61}).
		Return([]models.ZoneHit{{
			Zone: &models.Geofence{ID: zoneID, Name: "Центр", Type: models.ZoneTourist},
			Flags: []models.RuleFlag{
				{Type: models.AlertTimeRestriction, Severity: models.SeverityMedium, Message: "Access outside allowed hours (09:00 - 18:00)"},
			},
		}}, nil)

	w := makeRequest(router, "POST", "/api/v1/geofences/check",
		jsonBody(t, gin.H{"latitude": 55.75, "longitude": 37.61}))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp CheckPointResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.InGeofence)
	require.Len(t, resp.Geofences, 1)
	assert.Equal(t, zoneID, resp.Geofences[0].ZoneID)
	require.Len(t, resp.Geofences[0].Flags, 1)
	// Метка времени ответа берется из внедренных часов, а не системного времени
	assert.True(t, resp.Timestamp.Equal(testHandlerNow))
}

func TestGetGeofence_NotFound(t *testing.T) {
	_, geofenceMock, _, router := newTestHandler(t)
	zoneID := uuid.New()

	geofenceMock.EXPECT().
		GetGeofence(gomock.Any(), zoneID).
		Return(nil, fmt.Errorf("%w: geofence %s", errs.ErrNotFound, zoneID))

	w := makeRequest(router, "GET", "/api/v1/geofences/"+zoneID.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthCheck(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
