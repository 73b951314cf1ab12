package repository

import "github.com/oksasatya/invoice-dashboard/internal/domain/entity"

// DashboardRepository computes the overview aggregates in SQL.
type DashboardRepository interface {
	CardData() (*entity.CardData, error)
	Revenue() ([]*entity.Revenue, error)
}
