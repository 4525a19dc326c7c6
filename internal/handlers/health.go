package handlers

import (
	"context"
	"net/http"
	"time"

	"propertyhub-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing service is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler takes one named check per dependency, e.g. "mongodb".
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health godoc
// @Summary Liveness and dependency check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	services := gin.H{}
	status := http.StatusOK
	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			logger.GlobalLogger.Errorf("%s ping failed: %v", name, err)
			services[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		services[name] = "ok"
	}

	body := gin.H{"success": status == http.StatusOK, "status": "ok", "services": services, "timestamp": time.Now().UTC()}
	if status != http.StatusOK {
		body["status"] = "error"
	}
	c.JSON(status, body)
}
