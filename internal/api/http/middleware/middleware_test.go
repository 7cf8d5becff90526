package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "request_id": c.GetString("request_id")})
	})
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	r := setupRouter(RequestIDMiddleware())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestRequestIDEchoed(t *testing.T) {
	r := setupRouter(RequestIDMiddleware())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-Id"))
	assert.Contains(t, w.Body.String(), "abc-123")
}

func TestRateLimitAllowsWithinBurst(t *testing.T) {
	r := setupRouter(RateLimitMiddleware(100, 5))

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}
}

func TestRateLimitRejectsBeyondBurst(t *testing.T) {
	// no refill to speak of at this rate
	r := setupRouter(RateLimitMiddleware(0.001, 2))

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
	assert.Equal(t, http.StatusTooManyRequests, codes[3])
}
