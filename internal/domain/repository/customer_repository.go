package repository

import "github.com/oksasatya/invoice-dashboard/internal/domain/entity"

// CustomerRepository reads customers for pickers and the customers table.
// The only mutation is the avatar URL set after a storage upload.
type CustomerRepository interface {
	GetAll() ([]*entity.Customer, error)
	GetByID(id string) (*entity.Customer, error)
	ListFiltered(query string) ([]*entity.CustomerSummary, error)
	UpdateImageURL(id, url string) error
}
