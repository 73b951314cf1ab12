package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/invoice-dashboard/internal/domain/entity"
	"github.com/oksasatya/invoice-dashboard/internal/domain/repository"
)

type InvoiceRepository struct {
	pool *pgxpool.Pool
}

func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

func (r *InvoiceRepository) Create(inv *entity.Invoice) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO invoices (customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, inv.CustomerID, inv.Amount, inv.Status, inv.Date)

	return row.Scan(&inv.ID)
}

// Update rewrites customer_id, amount and status. The date column is
// deliberately absent: it is immutable after creation.
func (r *InvoiceRepository) Update(inv *entity.Invoice) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3
		WHERE id = $4
	`, inv.CustomerID, inv.Amount, inv.Status, inv.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete is idempotent: removing an id that is already gone is not an error.
func (r *InvoiceRepository) Delete(id string) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	return err
}

func (r *InvoiceRepository) GetByID(id string) (*entity.Invoice, error) {
	ctx := context.Background()
	inv := &entity.Invoice{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, customer_id, amount, status, to_char(date, 'YYYY-MM-DD')
		FROM invoices
		WHERE id = $1
	`, id)

	if err := row.Scan(&inv.ID, &inv.CustomerID, &inv.Amount, &inv.Status, &inv.Date); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

const filteredWhere = `
	WHERE customers.name ILIKE $1
	   OR customers.email ILIKE $1
	   OR invoices.amount::text ILIKE $1
	   OR invoices.date::text ILIKE $1
	   OR invoices.status ILIKE $1`

func (r *InvoiceRepository) ListFiltered(query string, offset, limit int) ([]*entity.InvoiceRow, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT invoices.id, invoices.customer_id, invoices.amount, invoices.status,
		       to_char(invoices.date, 'YYYY-MM-DD'),
		       customers.name, customers.email, customers.image_url
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id`+filteredWhere+`
		ORDER BY invoices.date DESC, invoices.id
		LIMIT $2 OFFSET $3
	`, "%"+query+"%", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInvoiceRows(rows)
}

func (r *InvoiceRepository) CountFiltered(query string) (int, error) {
	ctx := context.Background()
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id`+filteredWhere,
		"%"+query+"%").Scan(&n)
	return n, err
}

func (r *InvoiceRepository) Latest(limit int) ([]*entity.InvoiceRow, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT invoices.id, invoices.customer_id, invoices.amount, invoices.status,
		       to_char(invoices.date, 'YYYY-MM-DD'),
		       customers.name, customers.email, customers.image_url
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		ORDER BY invoices.date DESC, invoices.id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInvoiceRows(rows)
}

func scanInvoiceRows(rows pgx.Rows) ([]*entity.InvoiceRow, error) {
	var list []*entity.InvoiceRow
	for rows.Next() {
		row := &entity.InvoiceRow{}
		if err := rows.Scan(&row.ID, &row.CustomerID, &row.Amount, &row.Status,
			&row.Date, &row.Name, &row.Email, &row.ImageURL); err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

var _ repository.InvoiceRepository = (*InvoiceRepository)(nil)
