package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves /health, /ready and /metrics.
type HealthHandler struct {
	db          Pinger
	metrics     http.Handler
	application string
	version     string
	now         func() time.Time
}

// NewHealthHandler constructs HealthHandler. metrics may be nil.
func NewHealthHandler(db Pinger, metrics http.Handler, application, version string) *HealthHandler {
	return &HealthHandler{db: db, metrics: metrics, application: application, version: version, now: time.Now}
}

// Health godoc
// @Summary Liveness with database status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	database := "Connected"
	if !h.dbReachable(c.Request.Context()) {
		database = "Disconnected"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "UP",
		"application": h.application,
		"version":     h.version,
		"timestamp":   h.now().UTC().Format(time.RFC3339),
		"database":    database,
	})
}

// Ready godoc
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if !h.dbReachable(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "NOT_READY"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "READY"})
}

// Metrics serves the Prometheus registry.
func (h *HealthHandler) Metrics(c *gin.Context) {
	if h.metrics == nil {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	h.metrics.ServeHTTP(c.Writer, c.Request)
}

func (h *HealthHandler) dbReachable(ctx context.Context) bool {
	if h.db == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return h.db.PingContext(ctx) == nil
}
