package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/invoice-dashboard/internal/container"
	handlers "github.com/oksasatya/invoice-dashboard/internal/interface/http"
	"github.com/oksasatya/invoice-dashboard/internal/interface/middleware"
)

// UserModule wires the auth form posts and the profile API.
// Pages: POST /login, POST /signup, POST /dashboard/logout
// API:   GET /api/me
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(pages, api *gin.RouterGroup) {
	rdb := container.GetRedis()
	logger := container.GetLogger()

	loginLimiter := middleware.RateLimit(rdb, logger, 10, time.Minute, middleware.KeyByIPAndPath) // 10 req/min per IP
	signupLimiter := middleware.RateLimit(rdb, logger, 5, time.Minute, middleware.KeyByIPAndPath) // 5 req/min per IP

	pages.POST("/login", loginLimiter, m.Handler.Login)
	pages.POST("/signup", signupLimiter, m.Handler.Signup)
	pages.POST("/dashboard/logout", m.Handler.Logout)

	api.GET("/me", m.Handler.GetProfile)
}
