package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/invoice-dashboard/internal/interface/http"
)

// DashboardModule wires the landing page aggregates.
// Pages: GET /dashboard
type DashboardModule struct {
	Handler *handlers.DashboardHandler
}

func NewDashboardModule(h *handlers.DashboardHandler) *DashboardModule {
	return &DashboardModule{Handler: h}
}

func (m *DashboardModule) Register(pages, api *gin.RouterGroup) {
	pages.GET("/dashboard", m.Handler.Overview)
}
