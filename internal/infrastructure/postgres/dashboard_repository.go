package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/invoice-dashboard/internal/domain/entity"
	"github.com/oksasatya/invoice-dashboard/internal/domain/repository"
)

type DashboardRepository struct {
	pool *pgxpool.Pool
}

func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

func (r *DashboardRepository) CardData() (*entity.CardData, error) {
	ctx := context.Background()
	d := &entity.CardData{}
	row := r.pool.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM invoices),
		       (SELECT COUNT(*) FROM customers),
		       COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0)
		FROM invoices
	`)
	if err := row.Scan(&d.NumberOfInvoices, &d.NumberOfCustomers,
		&d.TotalPaid, &d.TotalPending); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DashboardRepository) Revenue() ([]*entity.Revenue, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT month, revenue FROM revenue ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.Revenue
	for rows.Next() {
		rev := &entity.Revenue{}
		if err := rows.Scan(&rev.Month, &rev.Revenue); err != nil {
			return nil, err
		}
		list = append(list, rev)
	}
	return list, rows.Err()
}

var _ repository.DashboardRepository = (*DashboardRepository)(nil)
