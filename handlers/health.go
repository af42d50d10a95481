package handlers

import (
	"net/http"

	"laohotel/utils"

	"github.com/gin-gonic/gin"
)

// NewHealthHandler reports the latest dependency snapshot; 503 when any check failed.
func NewHealthHandler(monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := monitor.GetHealthStatus()
		if !status.Healthy() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": status.Checks, "checkedAt": status.CheckedAt})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": status.Checks, "checkedAt": status.CheckedAt})
	}
}
