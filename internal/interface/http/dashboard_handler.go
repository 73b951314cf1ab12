package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/invoice-dashboard/internal/application"
	"github.com/oksasatya/invoice-dashboard/pkg/response"
)

// DashboardHandler serves the landing page aggregates.
type DashboardHandler struct {
	Service *application.DashboardService
}

func NewDashboardHandler(service *application.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: service}
}

// Overview returns the card counters, the revenue chart and the latest
// invoices in one payload.
func (h *DashboardHandler) Overview(c *gin.Context) {
	ov, err := h.Service.GetOverview(c.Request.Context())
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "Failed to load dashboard", nil)
		return
	}
	response.Success(c, http.StatusOK, ov, "dashboard", nil)
}
