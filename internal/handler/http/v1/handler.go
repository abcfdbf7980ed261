package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/tourist_tracking_system/internal/config"
	"github.com/shenikar/tourist_tracking_system/internal/errs"
	"github.com/shenikar/tourist_tracking_system/internal/models"
	"github.com/shenikar/tourist_tracking_system/internal/service"
	"github.com/shenikar/tourist_tracking_system/pkg/clock"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	trackingService service.TrackingService
	geofenceService service.GeofenceService
	alertService    service.AlertService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
	clock           clock.Clock
}

func NewHandler(
	trackingService service.TrackingService,
	geofenceService service.GeofenceService,
	alertService service.AlertService,
	logger *logrus.Logger,
	cfg *config.Config,
	clk clock.Clock,
) *Handler {
	return &Handler{
		trackingService: trackingService,
		geofenceService: geofenceService,
		alertService:    alertService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
		clock:           clk,
	}
}

// respondError маппит виды ошибок движка на HTTP-коды.
// 4xx отдают машинный вид и человекочитаемое сообщение,
// 5xx - только общий текст, детали остаются в логах.
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidCoordinates):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_coordinates", Message: err.Error()})
	case errors.Is(err, errs.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: err.Error()})
	case errors.Is(err, errs.ErrReasonRequired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "reason_required", Message: err.Error()})
	case errors.Is(err, errs.ErrNotLinked):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_linked", Message: err.Error()})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: err.Error()})
	case errors.Is(err, errs.ErrAlreadyActive):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "already_active", Message: err.Error()})
	default:
		log.WithError(err).Error("Internal error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// @Summary Link an ID card to a tourist
// @Description Activate tracking for an issued ID card.
// @Tags Tracking
// @Accept json
// @Produce json
// @Param link body LinkRequest true "Link request"
// @Success 201 {object} TrackingResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 409 {object} ErrorResponse "Card already in circulation"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tracking/link [post]
func (h *Handler) linkCard(c *gin.Context) {
	var input LinkRequest
	log := h.logger.WithField("method", "linkCard")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}

	var info models.TouristInfo
	if input.TouristInfo != nil {
		info = models.TouristInfo{
			Name:             input.TouristInfo.Name,
			Email:            input.TouristInfo.Email,
			Nationality:      input.TouristInfo.Nationality,
			EmergencyContact: input.TouristInfo.EmergencyContact,
		}
	}
	var initial *models.Point
	if input.InitialPosition != nil {
		initial = &models.Point{
			Latitude:  *input.InitialPosition.Latitude,
			Longitude: *input.InitialPosition.Longitude,
		}
	}

	rec, err := h.trackingService.Link(c.Request.Context(), input.CardID, input.ContactID, info, initial)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToTrackingResponse(rec))
}

// @Summary Update tourist location
// @Description Process a position update, evaluate geofence containment and emit alerts.
// @Tags Tracking
// @Accept json
// @Produce json
// @Param location body LocationUpdateRequest true "Location update"
// @Success 200 {object} LocationUpdateResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or coordinates"
// @Failure 404 {object} ErrorResponse "Card not linked"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tracking/location [post]
func (h *Handler) updateLocation(c *gin.Context) {
	var input LocationUpdateRequest
	log := h.logger.WithField("method", "updateLocation")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}

	sample := &models.LocationSample{
		CardID:   input.CardID,
		Position: models.Point{Latitude: *input.Latitude, Longitude: *input.Longitude},
		Accuracy: input.Accuracy,
		Altitude: input.Altitude,
		Speed:    input.Speed,
		Heading:  input.Heading,
		Source:   input.Source,
	}
	if input.DeviceInfo != nil {
		sample.DeviceInfo = &models.DeviceInfo{
			UserAgent: input.DeviceInfo.UserAgent,
			Platform:  input.DeviceInfo.Platform,
			Battery:   input.DeviceInfo.Battery,
		}
	}

	rec, alerts, err := h.trackingService.UpdateLocation(c.Request.Context(), sample)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	resp := LocationUpdateResponse{
		Message:   "Location updated successfully",
		Timestamp: rec.LastUpdatedAt,
		Location:  sample.Position,
		Status:    rec.Status,
	}
	for _, alert := range alerts {
		resp.Alerts = append(resp.Alerts, ModelToAlertResponse(alert))
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List tracked tourists
// @Description List tourists with issued cards, most recently updated first.
// @Tags Tracking
// @Produce json
// @Param status query string false "Status filter" default(active)
// @Param limit query int false "Max records" default(100)
// @Success 200 {object} TouristListResponse
// @Failure 400 {object} ErrorResponse "Unknown status"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tracking/tourists [get]
func (h *Handler) listTourists(c *gin.Context) {
	log := h.logger.WithField("method", "listTourists")
	status := c.DefaultQuery("status", models.StatusActive)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	records, err := h.trackingService.ListTourists(c.Request.Context(), status, limit)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToTouristList(records))
}

// @Summary Get tourist by card ID
// @Description Full tracking record including recent alerts.
// @Tags Tracking
// @Produce json
// @Param cardId path string true "Card ID"
// @Success 200 {object} TrackingResponse
// @Failure 404 {object} ErrorResponse "Tourist not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tracking/tourist/{cardId} [get]
func (h *Handler) getTourist(c *gin.Context) {
	cardID := c.Param("cardId")
	log := h.logger.WithField("method", "getTourist").WithField("card_id", cardID)

	rec, err := h.trackingService.GetTourist(c.Request.Context(), cardID)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToTrackingResponse(rec))
}

// @Summary Get location history
// @Description Location samples for a card, newest first. Use limit or a startTime/endTime range.
// @Tags Tracking
// @Produce json
// @Param cardId path string true "Card ID"
// @Param limit query int false "Max samples" default(100)
// @Param startTime query string false "Range start (RFC3339)"
// @Param endTime query string false "Range end (RFC3339)"
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} ErrorResponse "Invalid time range"
// @Failure 404 {object} ErrorResponse "Card not linked"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tracking/history/{cardId} [get]
func (h *Handler) getHistory(c *gin.Context) {
	cardID := c.Param("cardId")
	log := h.logger.WithField("method", "getHistory").WithField("card_id", cardID)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	var start, end *time.Time
	if raw := c.Query("startTime"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "invalid startTime"})
			return
		}
		start = &t
	}
	if raw := c.Query("endTime"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "invalid endTime"})
			return
		}
		end = &t
	}

	samples, err := h.trackingService.History(c.Request.Context(), cardID, limit, start, end)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{CardID: cardID, Count: len(samples), History: samples})
}

// @Summary Get simplified tourist path
// @Description Coordinates for map rendering, oldest to newest.
// @Tags Tracking
// @Produce json
// @Param cardId path string true "Card ID"
// @Param limit query int false "Max points" default(50)
// @Success 200 {object} PathResponse
// @Failure 404 {object} ErrorResponse "Card not linked"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tracking/path/{cardId} [get]
func (h *Handler) getPath(c *gin.Context) {
	cardID := c.Param("cardId")
	log := h.logger.WithField("method", "getPath").WithField("card_id", cardID)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	path, err := h.trackingService.Path(c.Request.Context(), cardID, limit)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, PathResponse{CardID: cardID, Path: path})
}

// @Summary Return an ID card
// @Description Close the tracking record. Idempotent: returning twice is not an error.
// @Tags Tracking
// @Accept json
// @Produce json
// @Param return body ReturnRequest true "Return request"
// @Success 200 {object} TrackingResponse
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Card never linked"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tracking/return [post]
func (h *Handler) returnCard(c *gin.Context) {
	var input ReturnRequest
	log := h.logger.WithField("method", "returnCard")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}

	rec, err := h.trackingService.ReturnCard(c.Request.Context(), input.CardID)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToTrackingResponse(rec))
}

// @Summary Find tourists near a location
// @Description Active tourists within a radius, nearest first.
// @Tags Tracking
// @Accept json
// @Produce json
// @Param nearby body NearbyRequest true "Nearby request"
// @Success 200 {object} TouristListResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or coordinates"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tracking/nearby [post]
func (h *Handler) nearbyTourists(c *gin.Context) {
	var input NearbyRequest
	log := h.logger.WithField("method", "nearbyTourists")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}

	p := models.Point{Latitude: *input.Latitude, Longitude: *input.Longitude}
	records, err := h.trackingService.Nearby(c.Request.Context(), p, input.MaxDistance)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToTouristList(records))
}

// @Summary Update tourist status
// @Description Administrative status override. Dismissing emergency requires an alert message.
// @Tags Tracking
// @Accept json
// @Produce json
// @Param cardId path string true "Card ID"
// @Param status body StatusUpdateRequest true "Status update"
// @Success 200 {object} TrackingResponse
// @Failure 400 {object} ErrorResponse "Validation error or reason required"
// @Failure 404 {object} ErrorResponse "Tourist not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tracking/status/{cardId} [patch]
func (h *Handler) updateStatus(c *gin.Context) {
	cardID := c.Param("cardId")
	log := h.logger.WithField("method", "updateStatus").WithField("card_id", cardID)

	var input StatusUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}

	rec, err := h.trackingService.SetStatus(c.Request.Context(), cardID, input.Status, input.AlertMessage)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToTrackingResponse(rec))
}

// @Summary List alerts
// @Description Alerts with optional acknowledged/severity filters, newest first.
// @Tags Alerts
// @Produce json
// @Param acknowledged query bool false "Acknowledged filter"
// @Param severity query string false "Severity filter"
// @Param limit query int false "Max alerts" default(50)
// @Success 200 {object} AlertListResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tracking/alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "listAlerts")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	var acknowledged *bool
	if raw := c.Query("acknowledged"); raw != "" {
		v := raw == "true"
		acknowledged = &v
	}

	alerts, err := h.alertService.ListAlerts(c.Request.Context(), acknowledged, c.Query("severity"), limit)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToAlertList(alerts))
}

// @Summary List alerts for a tourist
// @Description Alerts for a specific card, newest first.
// @Tags Alerts
// @Produce json
// @Param id path string true "Card ID"
// @Param limit query int false "Max alerts" default(20)
// @Success 200 {object} AlertListResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tracking/alerts/{id} [get]
func (h *Handler) alertsByCard(c *gin.Context) {
	cardID := c.Param("id")
	log := h.logger.WithField("method", "alertsByCard").WithField("card_id", cardID)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	alerts, err := h.alertService.AlertsByCard(c.Request.Context(), cardID, limit)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToAlertList(alerts))
}

// @Summary Recent critical alerts
// @Description Unacknowledged critical alerts for the last N hours.
// @Tags Alerts
// @Produce json
// @Param hours query int false "Lookback window in hours" default(24)
// @Success 200 {object} AlertListResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tracking/alerts/critical/recent [get]
func (h *Handler) criticalAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "criticalAlerts")
	hours, _ := strconv.Atoi(c.DefaultQuery("hours", "24"))

	alerts, err := h.alertService.CriticalRecent(c.Request.Context(), hours)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToAlertList(alerts))
}

// @Summary Acknowledge an alert
// @Description Idempotently mark an alert as acknowledged.
// @Tags Alerts
// @Accept json
// @Produce json
// @Param id path string true "Alert ID"
// @Param acknowledge body AcknowledgeRequest true "Acknowledge request"
// @Success 200 {object} AlertResponse
// @Failure 400 {object} ErrorResponse "Invalid alert ID or request body"
// @Failure 404 {object} ErrorResponse "Alert not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tracking/alerts/{id}/acknowledge [patch]
func (h *Handler) acknowledgeAlert(c *gin.Context) {
	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "invalid alert ID"})
		return
	}
	log := h.logger.WithField("method", "acknowledgeAlert").WithField("alert_id", alertID)

	var input AcknowledgeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}

	alert, err := h.alertService.Acknowledge(c.Request.Context(), alertID, input.AcknowledgedBy)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(alert))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
