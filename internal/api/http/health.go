package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MuseLink-app/muselink-backend/internal/connectivity"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db,omitempty"`
	Redis     string    `json:"redis,omitempty"`
	CheckedAt time.Time `json:"checked_at,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	monitor     *connectivity.Monitor
}

func NewHealthHandler(serviceName, version string, monitor *connectivity.Monitor) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		monitor:     monitor,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
	}

	code := http.StatusOK
	if h.monitor != nil {
		status := h.monitor.Snapshot()
		resp.DB = upDown(status.DB)
		resp.Redis = upDown(status.Redis)
		resp.CheckedAt = status.CheckedAt
		if !status.Healthy() {
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, resp)
}

// Metrics exposes the dependency call counters.
func (h *HealthHandler) Metrics(c *gin.Context) {
	m := connectivity.GetMetrics()
	c.JSON(http.StatusOK, gin.H{
		"dependency_calls":  m.Calls(),
		"dependency_errors": m.Errors(),
		"avg_latency_ms":    m.AverageLatency(),
		"error_rate_pct":    m.ErrorRate(),
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
	r.GET("/metrics", h.Metrics)
}

func upDown(up bool) string {
	if up {
		return "up"
	}
	return "down"
}
