package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/invoice-dashboard/internal/domain/entity"
	"github.com/oksasatya/invoice-dashboard/internal/domain/repository"
)

type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

func (r *CustomerRepository) GetAll() ([]*entity.Customer, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, image_url
		FROM customers
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		c := &entity.Customer{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CustomerRepository) GetByID(id string) (*entity.Customer, error) {
	ctx := context.Background()
	c := &entity.Customer{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, image_url
		FROM customers
		WHERE id = $1
	`, id)
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListFiltered returns the customers table rows with invoice aggregates,
// pending/paid totals already summed in cents.
func (r *CustomerRepository) ListFiltered(query string) ([]*entity.CustomerSummary, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT customers.id, customers.name, customers.email, customers.image_url,
		       COUNT(invoices.id) AS total_invoices,
		       COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS total_pending,
		       COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS total_paid
		FROM customers
		LEFT JOIN invoices ON customers.id = invoices.customer_id
		WHERE customers.name ILIKE $1 OR customers.email ILIKE $1
		GROUP BY customers.id, customers.name, customers.email, customers.image_url
		ORDER BY customers.name
	`, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.CustomerSummary
	for rows.Next() {
		c := &entity.CustomerSummary{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL,
			&c.TotalInvoices, &c.TotalPending, &c.TotalPaid); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CustomerRepository) UpdateImageURL(id, url string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE customers SET image_url = $1 WHERE id = $2
	`, url, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)
