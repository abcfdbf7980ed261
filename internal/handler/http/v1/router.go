package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/shenikar/tourist_tracking_system/internal/config"
	"github.com/sirupsen/logrus"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, cfg *config.Config, log *logrus.Logger) {
	// Маршруты отслеживания туристов
	tracking := api.Group("/tracking")
	{
		tracking.POST("/link", h.linkCard)
		tracking.POST("/location", h.updateLocation)
		tracking.POST("/return", h.returnCard)
		tracking.POST("/nearby", h.nearbyTourists)
		tracking.GET("/tourists", h.listTourists)
		tracking.GET("/tourist/:cardId", h.getTourist)
		tracking.GET("/history/:cardId", h.getHistory)
		tracking.GET("/path/:cardId", h.getPath)
		tracking.PATCH("/status/:cardId", h.updateStatus)

		// Оповещения
		// alertsByCard и acknowledgeAlert делят параметр :id,
		// иначе gin не позволит зарегистрировать оба маршрута
		tracking.GET("/alerts", h.listAlerts)
		tracking.GET("/alerts/critical/recent", h.criticalAlerts)
		tracking.GET("/alerts/:id", h.alertsByCard)
		tracking.PATCH("/alerts/:id/acknowledge", h.acknowledgeAlert)
	}

	// Маршруты каталога геозон
	geofences := api.Group("/geofences")
	{
		geofences.GET("", h.listGeofences)
		geofences.GET("/:zoneId", h.getGeofence)
		geofences.GET("/:zoneId/analytics", h.geofenceAnalytics)
		geofences.POST("/check", h.checkPoint)

		// Административные операции требуют API-ключ
		admin := geofences.Group("", APIKeyAuthMiddleware(cfg, log))
		{
			admin.POST("", h.createGeofence)
			admin.PATCH("/:zoneId/stats", h.updateGeofenceStats)
		}
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
