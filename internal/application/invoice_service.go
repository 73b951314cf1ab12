package application

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/invoice-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/invoice-dashboard/internal/domain/repository"
	"github.com/oksasatya/invoice-dashboard/internal/infrastructure/cache"
	"github.com/oksasatya/invoice-dashboard/internal/validation"
)

// User-facing outcomes of the invoice mutations. The wording is part of the
// product: the dashboard front end renders these strings verbatim.
const (
	MsgCreateMissingFields = "Missing Fields. Failed to Create Invoice."
	MsgUpdateMissingFields = "Missing Fields. Failed to Update Invoice."
	MsgCreateDBError       = "Database Error: Failed to Create Invoice."
	MsgUpdateDBError       = "Database Error: Failed to Update Invoice."
	MsgDeleteDBError       = "Database Error: Failed to Delete Invoice."
	MsgDeleted             = "Deleted Invoice."
)

const (
	invoicesPath    = "/dashboard/invoices"
	invoicesPerPage = 6
)

// State is the result of one form mutation: field errors and a summary for
// the failing case, a redirect target for the successful one. At most one of
// RedirectTo and Message/Errors is set.
type State struct {
	Errors     map[string][]string `json:"errors,omitempty"`
	Message    string              `json:"message,omitempty"`
	RedirectTo string              `json:"-"`
}

// InvoiceService runs the validate -> persist -> invalidate -> redirect
// workflow for invoice mutations, plus the cached listing reads.
type InvoiceService struct {
	Repo    repo.InvoiceRepository
	Cache   *cache.ListingCache
	Logger  *logrus.Logger
	ES      *elasticsearch.Client
	ESIndex string
}

func NewInvoiceService(r repo.InvoiceRepository, c *cache.ListingCache, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *InvoiceService {
	return &InvoiceService{Repo: r, Cache: c, Logger: logger, ES: es, ESIndex: esIndex}
}

// CreateInvoice validates the form and inserts a new invoice. The amount is
// stored in cents and the date is stamped with the current UTC day.
func (s *InvoiceService) CreateInvoice(ctx context.Context, form url.Values) State {
	in, fieldErrors := validation.ParseInvoice(form)
	if fieldErrors != nil {
		return State{Errors: fieldErrors, Message: MsgCreateMissingFields}
	}

	inv := &entity.Invoice{
		CustomerID: in.CustomerID,
		Amount:     toCents(in.Amount),
		Status:     in.Status,
		Date:       time.Now().UTC().Format("2006-01-02"),
	}
	if err := s.Repo.Create(inv); err != nil {
		s.Logger.WithError(err).Error("create invoice failed")
		return State{Message: MsgCreateDBError}
	}

	s.invalidateListing(ctx)
	s.indexInvoice(ctx, inv)
	return State{RedirectTo: invoicesPath}
}

// UpdateInvoice rewrites customer, amount and status of an existing invoice.
// The creation date is never touched.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, form url.Values) State {
	in, fieldErrors := validation.ParseInvoice(form)
	if fieldErrors != nil {
		return State{Errors: fieldErrors, Message: MsgUpdateMissingFields}
	}

	inv := &entity.Invoice{
		ID:         id,
		CustomerID: in.CustomerID,
		Amount:     toCents(in.Amount),
		Status:     in.Status,
	}
	if err := s.Repo.Update(inv); err != nil {
		s.Logger.WithError(err).WithField("invoice_id", id).Error("update invoice failed")
		return State{Message: MsgUpdateDBError}
	}

	s.invalidateListing(ctx)
	s.indexInvoice(ctx, inv)
	return State{RedirectTo: invoicesPath}
}

// DeleteInvoice removes an invoice. Deleting an id that no longer exists
// reports the same confirmation as deleting a live one; delete is usually
// triggered from a listing that may be stale.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) State {
	if err := s.Repo.Delete(id); err != nil {
		s.Logger.WithError(err).WithField("invoice_id", id).Error("delete invoice failed")
		return State{Message: MsgDeleteDBError}
	}

	s.invalidateListing(ctx)
	s.removeFromIndex(ctx, id)
	return State{Message: MsgDeleted}
}

// Listing is one page of the invoices table.
type Listing struct {
	Invoices   []*entity.InvoiceRow `json:"invoices"`
	Query      string               `json:"query"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"total_pages"`
}

// ListInvoices serves the filtered, paginated table, through the Redis page
// cache when it is warm.
func (s *InvoiceService) ListInvoices(ctx context.Context, query string, page int) (*Listing, error) {
	if page < 1 {
		page = 1
	}

	var cached Listing
	if cache.GetPage(ctx, s.Cache, query, page, &cached) {
		return &cached, nil
	}

	rows, err := s.Repo.ListFiltered(query, (page-1)*invoicesPerPage, invoicesPerPage)
	if err != nil {
		return nil, err
	}
	total, err := s.Repo.CountFiltered(query)
	if err != nil {
		return nil, err
	}

	listing := &Listing{
		Invoices:   rows,
		Query:      query,
		Page:       page,
		TotalPages: (total + invoicesPerPage - 1) / invoicesPerPage,
	}
	cache.SetPage(ctx, s.Cache, query, page, listing)
	return listing, nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*entity.Invoice, error) {
	return s.Repo.GetByID(id)
}

func (s *InvoiceService) invalidateListing(ctx context.Context) {
	if err := s.Cache.Invalidate(ctx); err != nil {
		s.Logger.WithError(err).Warn("invoice listing cache invalidation failed")
	}
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

// indexInvoice mirrors the invoice into Elasticsearch for the search
// endpoint. Best effort: search lags rather than failing the mutation.
func (s *InvoiceService) indexInvoice(ctx context.Context, inv *entity.Invoice) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          inv.ID,
		"customer_id": inv.CustomerID,
		"amount":      inv.Amount,
		"status":      inv.Status,
	}
	if inv.Date != "" {
		doc["date"] = inv.Date
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: inv.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("invoice_id", inv.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("invoice_id", inv.ID).Warn("es index response error")
	}
}

func (s *InvoiceService) removeFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("invoice_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

// SearchInvoices performs a multi_match query over the indexed invoices.
func (s *InvoiceService) SearchInvoices(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"customer_id", "status", "date"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
