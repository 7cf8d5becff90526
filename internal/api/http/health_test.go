package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuseLink-app/muselink-backend/internal/connectivity"
)

func setupHealthRouter(monitor *connectivity.Monitor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHealthHandler("muselink-backend", "test", monitor).RegisterRoutes(r)
	return r
}

func TestHealthCheckWithoutMonitor(t *testing.T) {
	r := setupHealthRouter(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "muselink-backend", resp.Service)
	assert.Equal(t, "test", resp.Version)
	assert.Empty(t, resp.DB)
}

func TestHealthCheckDegradedBeforeFirstPoll(t *testing.T) {
	// a fresh monitor has not observed its dependencies yet
	r := setupHealthRouter(connectivity.NewMonitor(nil, nil, time.Minute))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "down", resp.DB)
	assert.Equal(t, "down", resp.Redis)
}

func TestHealthCheckHealthyAfterPoll(t *testing.T) {
	monitor := connectivity.NewMonitor(nil, nil, time.Minute)
	monitor.Check(context.Background())

	r := setupHealthRouter(monitor)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "up", resp.DB)
	assert.Equal(t, "up", resp.Redis)
	assert.False(t, resp.CheckedAt.IsZero())
}

func TestMetricsEndpoint(t *testing.T) {
	connectivity.ResetMetrics()
	r := setupHealthRouter(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "dependency_calls")
	assert.Contains(t, resp, "error_rate_pct")
}
