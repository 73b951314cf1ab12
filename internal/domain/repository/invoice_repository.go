package repository

import "github.com/oksasatya/invoice-dashboard/internal/domain/entity"

// InvoiceRepository owns durable invoice state. Update only touches
// customer_id, amount and status; the creation date is immutable.
type InvoiceRepository interface {
	Create(inv *entity.Invoice) error
	Update(inv *entity.Invoice) error
	Delete(id string) error
	GetByID(id string) (*entity.Invoice, error)

	// ListFiltered searches across customer name/email, amount, date and
	// status, newest first, with offset/limit paging.
	ListFiltered(query string, offset, limit int) ([]*entity.InvoiceRow, error)
	CountFiltered(query string) (int, error)
	Latest(limit int) ([]*entity.InvoiceRow, error)
}
