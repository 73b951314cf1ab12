package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/invoice-dashboard/internal/application"
	"github.com/oksasatya/invoice-dashboard/internal/domain/repository"
	"github.com/oksasatya/invoice-dashboard/pkg/response"
)

const maxAvatarSize = 5 << 20 // 5 MiB

// CustomerHandler serves the customers table and the avatar upload API.
type CustomerHandler struct {
	Service *application.CustomerService
}

func NewCustomerHandler(service *application.CustomerService) *CustomerHandler {
	return &CustomerHandler{Service: service}
}

// List serves the filtered customers table with invoice aggregates.
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.Service.ListCustomers(c.Request.Context(), c.Query("query"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "Failed to load customers", nil)
		return
	}
	response.Success(c, http.StatusOK, customers, "customers", nil)
}

// UploadAvatar accepts a multipart image and stores it as the customer's
// avatar.
func (h *CustomerHandler) UploadAvatar(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "Missing file", nil)
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxAvatarSize {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "File too large", nil)
		return
	}

	url, err := h.Service.UploadAvatar(
		c.Request.Context(),
		c.Param("id"),
		file,
		header.Filename,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "Customer not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "Failed to upload avatar", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"image_url": url}, "avatar uploaded", nil)
}
