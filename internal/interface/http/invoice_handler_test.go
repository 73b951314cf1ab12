package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/invoice-dashboard/internal/application"
	"github.com/oksasatya/invoice-dashboard/internal/domain/entity"
	"github.com/oksasatya/invoice-dashboard/internal/infrastructure/cache"
)

type stubInvoiceRepo struct {
	created []*entity.Invoice
	deleted []string
}

func (s *stubInvoiceRepo) Create(inv *entity.Invoice) error { s.created = append(s.created, inv); return nil }
func (s *stubInvoiceRepo) Update(inv *entity.Invoice) error { return nil }
func (s *stubInvoiceRepo) Delete(id string) error           { s.deleted = append(s.deleted, id); return nil }
func (s *stubInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return &entity.Invoice{ID: id}, nil
}
func (s *stubInvoiceRepo) ListFiltered(query string, offset, limit int) ([]*entity.InvoiceRow, error) {
	return nil, nil
}
func (s *stubInvoiceRepo) CountFiltered(query string) (int, error)        { return 0, nil }
func (s *stubInvoiceRepo) Latest(limit int) ([]*entity.InvoiceRow, error) { return nil, nil }

func newInvoiceRouter(t *testing.T) (*gin.Engine, *stubInvoiceRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	repo := &stubInvoiceRepo{}
	svc := application.NewInvoiceService(repo, cache.NewListingCache(rdb, "invoices:listing", time.Minute), logger, nil, "")
	h := NewInvoiceHandler(svc, nil)

	r := gin.New()
	r.POST("/dashboard/invoices", h.Create)
	r.POST("/dashboard/invoices/:id/delete", h.Delete)
	return r, repo
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateInvoiceRedirectsToListing(t *testing.T) {
	r, repo := newInvoiceRouter(t)

	form := url.Values{}
	form.Set("customerId", "cust-1")
	form.Set("amount", "12.50")
	form.Set("status", "pending")

	w := postForm(r, "/dashboard/invoices", form)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard/invoices", w.Header().Get("Location"))
	require.Len(t, repo.created, 1)
}

func TestCreateInvoiceValidationEnvelope(t *testing.T) {
	r, repo := newInvoiceRouter(t)

	w := postForm(r, "/dashboard/invoices", url.Values{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.created)

	var body struct {
		Success bool                `json:"success"`
		Message string              `json:"message"`
		Error   map[string][]string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, application.MsgCreateMissingFields, body.Message)
	assert.Contains(t, body.Error, "customerId")
	assert.Contains(t, body.Error, "amount")
	assert.Contains(t, body.Error, "status")
}

func TestDeleteInvoiceStaysOnPage(t *testing.T) {
	r, repo := newInvoiceRouter(t)

	w := postForm(r, "/dashboard/invoices/inv-1/delete", url.Values{})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"inv-1"}, repo.deleted)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, application.MsgDeleted, body.Message)
}
