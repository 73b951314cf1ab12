package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/invoice-dashboard/internal/application"
	"github.com/oksasatya/invoice-dashboard/internal/domain/repository"
	"github.com/oksasatya/invoice-dashboard/pkg/response"
)

// InvoiceHandler serves the invoices table pages and the form mutations.
type InvoiceHandler struct {
	Service   *application.InvoiceService
	Customers *application.CustomerService
}

func NewInvoiceHandler(service *application.InvoiceService, customers *application.CustomerService) *InvoiceHandler {
	return &InvoiceHandler{Service: service, Customers: customers}
}

// List serves one filtered page of the invoices table.
func (h *InvoiceHandler) List(c *gin.Context) {
	query := c.Query("query")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	listing, err := h.Service.ListInvoices(c.Request.Context(), query, page)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "Failed to load invoices", nil)
		return
	}
	response.Success(c, http.StatusOK, listing, "invoices", nil)
}

// CreateForm returns the data backing the create-invoice form: the customer
// picker options.
func (h *InvoiceHandler) CreateForm(c *gin.Context) {
	customers, err := h.Customers.AllCustomers(c.Request.Context())
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "Failed to load customers", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"customers": customers}, "create invoice form", nil)
}

// EditForm returns the invoice being edited together with the picker options.
func (h *InvoiceHandler) EditForm(c *gin.Context) {
	id := c.Param("id")
	inv, err := h.Service.GetInvoice(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "Invoice not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "Failed to load invoice", nil)
		return
	}
	customers, err := h.Customers.AllCustomers(c.Request.Context())
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "Failed to load customers", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"invoice": inv, "customers": customers}, "edit invoice form", nil)
}

// Create handles the create-invoice form post.
func (h *InvoiceHandler) Create(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		response.Error[any](c, http.StatusBadRequest, application.MsgCreateMissingFields, nil)
		return
	}
	h.writeState(c, h.Service.CreateInvoice(c.Request.Context(), c.Request.PostForm))
}

// Update handles the edit-invoice form post.
func (h *InvoiceHandler) Update(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		response.Error[any](c, http.StatusBadRequest, application.MsgUpdateMissingFields, nil)
		return
	}
	h.writeState(c, h.Service.UpdateInvoice(c.Request.Context(), c.Param("id"), c.Request.PostForm))
}

// Delete removes an invoice from its row action. No redirect: the table
// refreshes in place with the confirmation message.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	st := h.Service.DeleteInvoice(c.Request.Context(), c.Param("id"))
	if st.Message == application.MsgDeleted {
		response.Success[any](c, http.StatusOK, nil, st.Message, nil)
		return
	}
	response.Error[any](c, http.StatusInternalServerError, st.Message, nil)
}

// Search queries the Elasticsearch mirror of the invoices.
func (h *InvoiceHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Service.SearchInvoices(c.Request.Context(), q, size)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "Search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}

// writeState maps a mutation outcome onto the wire: success redirects back to
// the table, validation failures carry field errors, store failures are 500s.
func (h *InvoiceHandler) writeState(c *gin.Context, st application.State) {
	if st.RedirectTo != "" {
		c.Redirect(http.StatusSeeOther, st.RedirectTo)
		return
	}
	if st.Errors != nil {
		response.Error[any](c, http.StatusBadRequest, st.Message, st.Errors)
		return
	}
	response.Error[any](c, http.StatusInternalServerError, st.Message, nil)
}
