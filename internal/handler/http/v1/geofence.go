package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/tourist_tracking_system/internal/models"
)

// @Summary Create a geofence
// @Description Register a circle or polygon zone with optional capacity and time rules.
// @Tags Geofences
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param geofence body CreateGeofenceRequest true "Geofence definition"
// @Success 201 {object} GeofenceResponse
// @Failure 400 {object} ErrorResponse "Invalid geometry or request body"
// @Failure 401 {object} ErrorResponse "Missing or invalid API key"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /geofences [post]
func (h *Handler) createGeofence(c *gin.Context) {
	var input CreateGeofenceRequest
	log := h.logger.WithField("method", "createGeofence")

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

	createdBy := c.GetHeader("X-Admin-User")
	if createdBy == "" {
		createdBy = "system"
	}
	zone := DTOToGeofenceModel(input, createdBy)
	if err := h.geofenceService.CreateGeofence(c.Request.Context(), zone); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToGeofenceResponse(zone))
}

// @Summary List geofences
// @Description Geofences with optional active/type filters.
// @Tags Geofences
// @Produce json
// @Param active query bool false "Active filter"
// @Param type query string false "Zone type filter"
// @Success 200 {object} GeofenceListResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /geofences [get]
func (h *Handler) listGeofences(c *gin.Context) {
	log := h.logger.WithField("method", "listGeofences")

	var active *bool
	if raw := c.Query("active"); raw != "" {
		v := raw == "true"
		active = &v
	}

	zones, err := h.geofenceService.ListGeofences(c.Request.Context(), active, c.Query("type"))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToGeofenceList(zones))
}

// @Summary Get geofence by ID
// @Tags Geofences
// @Produce json
// @Param zoneId path string true "Zone ID"
// @Success 200 {object} GeofenceResponse
// @Failure 400 {object} ErrorResponse "Invalid zone ID"
// @Failure 404 {object} ErrorResponse "Geofence not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /geofences/{zoneId} [get]
func (h *Handler) getGeofence(c *gin.Context) {
	zoneID, err := uuid.Parse(c.Param("zoneId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "invalid zone ID"})
		return
	}
	log := h.logger.WithField("method", "getGeofence").WithField("zone_id", zoneID)

	zone, err := h.geofenceService.GetGeofence(c.Request.Context(), zoneID)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToGeofenceResponse(zone))
}

// @Summary Update geofence statistics
// @Description Administrative correction of occupancy and visitor counters.
// @Tags Geofences
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param zoneId path string true "Zone ID"
// @Param stats body UpdateStatsRequest true "Statistics update"
// @Success 200 {object} GeofenceResponse
// @Failure 400 {object} ErrorResponse "Invalid zone ID or request body"
// @Failure 401 {object} ErrorResponse "Missing or invalid API key"
// @Failure 404 {object} ErrorResponse "Geofence not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /geofences/{zoneId}/stats [patch]
func (h *Handler) updateGeofenceStats(c *gin.Context) {
	zoneID, err := uuid.Parse(c.Param("zoneId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "invalid zone ID"})
		return
	}
	log := h.logger.WithField("method", "updateGeofenceStats").WithField("zone_id", zoneID)

	var input UpdateStatsRequest
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

	zone, err := h.geofenceService.UpdateStats(c.Request.Context(), zoneID, input.CurrentOccupancy, input.TotalVisitors)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToGeofenceResponse(zone))
}

// @Summary Geofence analytics
// @Description Alert breakdown and utilization for a zone.
// @Tags Geofences
// @Produce json
// @Param zoneId path string true "Zone ID"
// @Success 200 {object} models.ZoneAnalytics
// @Failure 400 {object} ErrorResponse "Invalid zone ID"
// @Failure 404 {object} ErrorResponse "Geofence not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /geofences/{zoneId}/analytics [get]
func (h *Handler) geofenceAnalytics(c *gin.Context) {
	zoneID, err := uuid.Parse(c.Param("zoneId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "invalid zone ID"})
		return
	}
	log := h.logger.WithField("method", "geofenceAnalytics").WithField("zone_id", zoneID)

	analytics, err := h.geofenceService.Analytics(c.Request.Context(), zoneID)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

// @Summary Check a point against active geofences
// @Description Containment evaluation without any tracking side effects.
// @Tags Geofences
// @Accept json
// @Produce json
// @Param point body CheckPointRequest true "Point to check"
// @Success 200 {object} CheckPointResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or coordinates"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /geofences/check [post]
func (h *Handler) checkPoint(c *gin.Context) {
	var input CheckPointRequest
	log := h.logger.WithField("method", "checkPoint")

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
	hits, err := h.geofenceService.EvaluatePoint(c.Request.Context(), p)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, HitsToCheckResponse(p, hits, h.clock.Now()))
}
