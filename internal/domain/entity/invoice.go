package entity

// Invoice statuses. The validation layer is the only place that enforces the
// enum; the store trusts its input.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// Invoice is stored with the amount in integer cents to avoid floating-point
// rounding, and the date as a calendar day (YYYY-MM-DD). Date is stamped at
// creation and never updated afterwards.
type Invoice struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Amount     int64  `json:"amount"` // cents
	Status     string `json:"status"`
	Date       string `json:"date"` // YYYY-MM-DD
}

// InvoiceRow is an invoice joined with its customer, as shown on listings.
type InvoiceRow struct {
	Invoice
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// CardData backs the four summary cards on the dashboard overview.
type CardData struct {
	NumberOfInvoices  int   `json:"number_of_invoices"`
	NumberOfCustomers int   `json:"number_of_customers"`
	TotalPaid         int64 `json:"total_paid"`
	TotalPending      int64 `json:"total_pending"`
}

// Revenue is one month of the revenue chart.
type Revenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}
