package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/invoice-dashboard/internal/auth"
	"github.com/oksasatya/invoice-dashboard/pkg/helpers"
)

// Gate enforces the page authorization policy on every non-bypassed route.
// Session presence means a parseable access token whose sid matches the live
// Redis session hash; anything less counts as logged out, never as an error.
func Gate(policy auth.Policy, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if policy.Bypasses(path) {
			c.Next()
			return
		}

		claims := sessionClaims(c, jwt, rdb)
		switch policy.Decide(claims != nil, path) {
		case auth.RedirectLogin:
			c.Redirect(http.StatusFound, policy.LoginPath)
			c.Abort()
			return
		case auth.RedirectDashboard:
			c.Redirect(http.StatusFound, policy.DashboardPath)
			c.Abort()
			return
		}

		if claims != nil {
			c.Set("user_id", claims.UserID)
			c.Set("session_id", claims.SessionID)
		}
		c.Next()
	}
}

// sessionClaims returns the verified claims of a live session, or nil.
func sessionClaims(c *gin.Context, jwt *helpers.JWTManager, rdb *redis.Client) *helpers.Claims {
	token, err := c.Cookie("access_token")
	if err != nil || token == "" {
		return nil
	}
	claims, err := jwt.ParseAccessToken(token)
	if err != nil {
		return nil
	}
	sid, err := rdb.HGet(c.Request.Context(), "user:session:"+claims.UserID, "sid").Result()
	if err != nil || sid != claims.SessionID {
		return nil
	}
	return claims
}
