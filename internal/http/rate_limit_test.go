package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter_Allow(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)

	// Burst of 2 is allowed, the third request is rejected.
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	// A different IP has its own bucket.
	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)

	router := gin.New()
	router.Use(RateLimitMiddleware(limiter, discardLogger()))
	router.POST("/open", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	perform := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/open", nil)
		request.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, request)
		return w
	}

	assert.Equal(t, http.StatusOK, perform().Code)

	w := perform()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limited")
}
