package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		_, hasLogger := c.Get("logger")
		c.JSON(http.StatusOK, gin.H{"logger": hasLogger})
	})
	return r
}

func TestRateLimitPerIP(t *testing.T) {
	r := newTestRouter(RateLimitMiddleware(2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Real-IP", "10.0.0.9")
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLoggerSetsIDAndLogger(t *testing.T) {
	r := newTestRouter(RequestLogger(zap.NewNop()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.JSONEq(t, `{"logger": true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc")
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
}

func TestGetClientIPFallsBackToRemoteAddr(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "192.0.2.7:5555"

	assert.Equal(t, "192.0.2.7", getClientIP(c))
}

func TestGetClientIPSkipsMalformedForwardedValues(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "192.0.2.7:5555"
	c.Request.Header.Set("X-Forwarded-For", "unknown, 198.51.100.4, 10.0.0.1")

	assert.Equal(t, "198.51.100.4", getClientIP(c))

	c.Request.Header.Set("X-Forwarded-For", "garbage")
	c.Request.Header.Set("X-Real-IP", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", getClientIP(c))
}

func TestRateLimitSetsRetryAfter(t *testing.T) {
	r := newTestRouter(RateLimitMiddleware(1))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if i == 1 {
			assert.Equal(t, http.StatusTooManyRequests, rec.Code)
			assert.Equal(t, "61", rec.Header().Get("Retry-After"))
			assert.Contains(t, rec.Body.String(), "Rate limit exceeded")
		}
	}
}

func TestRateLimiterStoreDropsIdleVisitors(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(10)
	store.now = func() time.Time { return now }

	store.getLimiter("198.51.100.1")
	store.getLimiter("198.51.100.2")
	assert.Equal(t, 2, store.size())

	now = now.Add(5 * time.Minute)
	store.getLimiter("198.51.100.2")

	now = now.Add(6 * time.Minute)
	store.getLimiter("198.51.100.3")
	assert.Equal(t, 2, store.size(), "first visitor idle for 11 minutes is dropped")
}
