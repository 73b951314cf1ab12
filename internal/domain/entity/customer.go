package entity

// Customer is a billing counterparty. Within this service customers are read
// and enriched (avatar), never created through the dashboard.
type Customer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// CustomerSummary is a customer row on the customers table page, with invoice
// aggregates computed by the store.
type CustomerSummary struct {
	Customer
	TotalInvoices int   `json:"total_invoices"`
	TotalPending  int64 `json:"total_pending"`
	TotalPaid     int64 `json:"total_paid"`
}
