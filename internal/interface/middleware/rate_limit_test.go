package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(t *testing.T, limit int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	r := gin.New()
	r.Use(RealIP())
	r.POST("/login", RateLimit(rdb, logger, limit, time.Minute, KeyByIPAndPath), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r, mr
}

func post(r *gin.Engine, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	r, _ := newLimitedRouter(t, 3)

	for i := 0; i < 3; i++ {
		w := post(r, "/login", "10.0.0.1")
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := post(r, "/login", "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitIsPerKey(t *testing.T) {
	r, _ := newLimitedRouter(t, 1)

	assert.Equal(t, http.StatusOK, post(r, "/login", "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, post(r, "/login", "10.0.0.1").Code)

	// a different client is unaffected
	assert.Equal(t, http.StatusOK, post(r, "/login", "10.0.0.2").Code)
}

func TestRateLimitResetsWithWindow(t *testing.T) {
	r, mr := newLimitedRouter(t, 1)

	assert.Equal(t, http.StatusOK, post(r, "/login", "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, post(r, "/login", "10.0.0.1").Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, post(r, "/login", "10.0.0.1").Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	r, mr := newLimitedRouter(t, 1)
	mr.Close()

	assert.Equal(t, http.StatusOK, post(r, "/login", "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, post(r, "/login", "10.0.0.1").Code)
}
