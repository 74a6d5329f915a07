package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func setupRateLimitedRouter(t *testing.T, cfg RateLimiterConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rl := NewRateLimiter(client, cfg, zaptest.NewLogger(t))

	router := gin.New()
	router.Use(rl.Handler())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ping": "pong"})
	})
	return router
}

func hit(router *gin.Engine) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	router := setupRateLimitedRouter(t, RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstCapacity:     3,
		Enabled:           true,
	})

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(router))
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	router := setupRateLimitedRouter(t, RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstCapacity:     2,
		Enabled:           true,
	})

	assert.Equal(t, http.StatusOK, hit(router))
	assert.Equal(t, http.StatusOK, hit(router))
	assert.Equal(t, http.StatusTooManyRequests, hit(router))
}

func TestRateLimiter_DisabledPassesThrough(t *testing.T) {
	router := setupRateLimitedRouter(t, RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstCapacity:     1,
		Enabled:           false,
	})

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(router))
	}
}

func TestRateLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rl := NewRateLimiter(client, RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstCapacity:     1,
		Enabled:           true,
	}, zaptest.NewLogger(t))

	router := gin.New()
	router.Use(rl.Handler())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ping": "pong"})
	})

	mr.Close()

	assert.Equal(t, http.StatusOK, hit(router))
}
