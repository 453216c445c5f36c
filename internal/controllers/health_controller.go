package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthCheck godoc
// @Summary Health check
// @Description Check if the service and its store are reachable
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func HealthCheck(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status, code, storeStatus := "healthy", http.StatusOK, "up"
		if err := store.PingContext(ctx); err != nil {
			log.WithError(err).Warn("Store ping failed")
			status, code, storeStatus = "degraded", http.StatusServiceUnavailable, "down"
		}

		c.JSON(code, gin.H{
			"status":    status,
			"store":     storeStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "gin-user-directory",
		})
	}
}
