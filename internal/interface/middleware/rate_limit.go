package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/invoice-dashboard/pkg/response"
)

// rateScript counts hits in a fixed window. The PEXPIRE only lands on the
// first hit so the window does not slide.
var rateScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`)

// KeyFunc derives the rate limit bucket for a request.
type KeyFunc func(c *gin.Context) string

// RateLimit allows `limit` requests per `window` per key. Redis trouble fails
// open: throttling is protection, not a dependency.
func RateLimit(rdb *redis.Client, logger *logrus.Logger, limit int, window time.Duration, key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		k := "ratelimit:" + key(c)
		res, err := rateScript.Run(c.Request.Context(), rdb, []string{k}, window.Milliseconds()).Result()
		if err != nil {
			logger.WithError(err).Warn("rate limit check failed, allowing request")
			c.Next()
			return
		}

		vals, ok := res.([]interface{})
		if !ok || len(vals) != 2 {
			c.Next()
			return
		}
		current, _ := vals[0].(int64)
		ttlMs, _ := vals[1].(int64)

		remaining := int64(limit) - current
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Duration(ttlMs)*time.Millisecond).Unix(), 10))

		if current > int64(limit) {
			response.Error[any](c, http.StatusTooManyRequests, "Too many requests. Please try again later.", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// KeyByIP buckets requests by client address.
func KeyByIP(c *gin.Context) string {
	return "ip:" + c.GetString("client_ip")
}

// KeyByIPAndPath buckets per client per route, for endpoint-specific limits.
func KeyByIPAndPath(c *gin.Context) string {
	return "ip:" + c.GetString("client_ip") + ":path:" + c.FullPath()
}

// KeyByUserID buckets by the authenticated user, falling back to IP.
func KeyByUserID(c *gin.Context) string {
	if uid := c.GetString("user_id"); uid != "" {
		return "user:" + uid
	}
	return KeyByIP(c)
}
