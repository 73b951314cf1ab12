package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/invoice-dashboard/internal/interface/http"
)

// InvoiceModule wires the invoices table and its form mutations.
// Pages: GET /dashboard/invoices, GET .../create, GET .../:id/edit,
// POST /dashboard/invoices, POST .../:id, POST .../:id/delete
// API:   GET /api/invoices/search
type InvoiceModule struct {
	Handler *handlers.InvoiceHandler
}

func NewInvoiceModule(h *handlers.InvoiceHandler) *InvoiceModule {
	return &InvoiceModule{Handler: h}
}

func (m *InvoiceModule) Register(pages, api *gin.RouterGroup) {
	inv := pages.Group("/dashboard/invoices")
	{
		inv.GET("", m.Handler.List)
		inv.GET("/create", m.Handler.CreateForm)
		inv.GET("/:id/edit", m.Handler.EditForm)
		inv.POST("", m.Handler.Create)
		inv.POST("/:id", m.Handler.Update)
		inv.POST("/:id/delete", m.Handler.Delete)
	}

	api.GET("/invoices/search", m.Handler.Search)
}
