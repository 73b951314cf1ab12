package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/invoice-dashboard/pkg/helpers"
	"github.com/oksasatya/invoice-dashboard/pkg/response"
)

// Auth protects JSON API routes. Unlike the page gate it never redirects; a
// missing or stale session is a 401 envelope.
func Auth(jwt *helpers.JWTManager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := sessionClaims(c, jwt, rdb)
		if claims == nil {
			response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
			c.Abort()
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("session_id", claims.SessionID)
		c.Next()
	}
}
