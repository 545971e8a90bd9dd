package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports the state of a long-lived connection.
type HealthChecker interface {
	IsHealthy() bool
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	store     Pinger
	publisher HealthChecker
}

// NewHealthHandler creates a new HealthHandler instance. A nil publisher is
// treated as healthy.
func NewHealthHandler(store Pinger, publisher HealthChecker) *HealthHandler {
	return &HealthHandler{
		store:     store,
		publisher: publisher,
	}
}

// LivenessProbe checks if the application is running.
func (h *HealthHandler) LivenessProbe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
		"time":   time.Now(),
	})
}

// ReadinessProbe checks if the application is ready to serve traffic.
func (h *HealthHandler) ReadinessProbe(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "DOWN",
			"database": "unhealthy",
			"error":    err.Error(),
			"time":     time.Now(),
		})
		return
	}

	rabbit := "disabled"
	if h.publisher != nil {
		if !h.publisher.IsHealthy() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "DOWN",
				"rabbitmq": "unhealthy",
				"time":     time.Now(),
			})
			return
		}
		rabbit = "healthy"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "UP",
		"database": "healthy",
		"rabbitmq": rabbit,
		"time":     time.Now(),
	})
}
