package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/invoice-dashboard/internal/interface/http"
)

// CustomerModule wires the customers table and the avatar upload.
// Pages: GET /customers
// API:   POST /api/customers/:id/avatar
type CustomerModule struct {
	Handler *handlers.CustomerHandler
}

func NewCustomerModule(h *handlers.CustomerHandler) *CustomerModule {
	return &CustomerModule{Handler: h}
}

func (m *CustomerModule) Register(pages, api *gin.RouterGroup) {
	pages.GET("/customers", m.Handler.List)

	api.POST("/customers/:id/avatar", m.Handler.UploadAvatar)
}
