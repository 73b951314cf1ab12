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
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/invoice-dashboard/internal/auth"
	"github.com/oksasatya/invoice-dashboard/pkg/helpers"
)

func newGateRouter(t *testing.T) (*gin.Engine, *helpers.JWTManager, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	r := gin.New()
	r.Use(Gate(auth.DefaultPolicy(), jwt, rdb, logger))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/dashboard", ok)
	r.GET("/login", ok)
	r.GET("/api/health", ok)
	return r, jwt, mr
}

func sessionCookie(t *testing.T, jwt *helpers.JWTManager, mr *miniredis.Miniredis, userID string) *http.Cookie {
	t.Helper()
	sid := "sid-1"
	token, _, err := jwt.GenerateAccessToken(userID, sid)
	require.NoError(t, err)
	mr.HSet("user:session:"+userID, "sid", sid)
	return &http.Cookie{Name: "access_token", Value: token}
}

func get(r *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGateRedirectsAnonymousToLogin(t *testing.T) {
	r, _, _ := newGateRouter(t)

	w := get(r, "/dashboard", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestGateAllowsSession(t *testing.T) {
	r, jwt, mr := newGateRouter(t)

	w := get(r, "/dashboard", sessionCookie(t, jwt, mr, "user-1"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGateBouncesSessionOffLogin(t *testing.T) {
	r, jwt, mr := newGateRouter(t)

	w := get(r, "/login", sessionCookie(t, jwt, mr, "user-1"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestGateAllowsAnonymousLogin(t *testing.T) {
	r, _, _ := newGateRouter(t)

	w := get(r, "/login", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGateSkipsAPIRoutes(t *testing.T) {
	r, _, _ := newGateRouter(t)

	w := get(r, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGateRejectsStaleSession(t *testing.T) {
	r, jwt, mr := newGateRouter(t)

	cookie := sessionCookie(t, jwt, mr, "user-1")
	mr.Del("user:session:user-1")

	w := get(r, "/dashboard", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestGateRejectsRotatedSession(t *testing.T) {
	r, jwt, mr := newGateRouter(t)

	cookie := sessionCookie(t, jwt, mr, "user-1")
	// a later sign-in rotates the sid; old tokens stop working
	mr.HSet("user:session:user-1", "sid", "sid-2")

	w := get(r, "/dashboard", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestGateRejectsGarbageToken(t *testing.T) {
	r, _, _ := newGateRouter(t)

	w := get(r, "/dashboard", &http.Cookie{Name: "access_token", Value: "not-a-jwt"})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
