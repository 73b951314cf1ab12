package application

import (
	"context"

	"github.com/oksasatya/invoice-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/invoice-dashboard/internal/domain/repository"
)

// Overview is everything the dashboard landing page renders.
type Overview struct {
	Cards          *entity.CardData     `json:"cards"`
	Revenue        []*entity.Revenue    `json:"revenue"`
	LatestInvoices []*entity.InvoiceRow `json:"latest_invoices"`
}

type DashboardService struct {
	Repo     repo.DashboardRepository
	Invoices repo.InvoiceRepository
}

func NewDashboardService(r repo.DashboardRepository, invoices repo.InvoiceRepository) *DashboardService {
	return &DashboardService{Repo: r, Invoices: invoices}
}

func (s *DashboardService) GetOverview(ctx context.Context) (*Overview, error) {
	cards, err := s.Repo.CardData()
	if err != nil {
		return nil, err
	}
	revenue, err := s.Repo.Revenue()
	if err != nil {
		return nil, err
	}
	latest, err := s.Invoices.Latest(5)
	if err != nil {
		return nil, err
	}
	return &Overview{Cards: cards, Revenue: revenue, LatestInvoices: latest}, nil
}
