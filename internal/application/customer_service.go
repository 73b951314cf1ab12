package application

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/invoice-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/invoice-dashboard/internal/domain/repository"
	"github.com/oksasatya/invoice-dashboard/pkg/helpers"
)

// CustomerService serves the customers table and the avatar upload.
type CustomerService struct {
	Repo      repo.CustomerRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewCustomerService(r repo.CustomerRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *CustomerService {
	return &CustomerService{Repo: r, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

// ListCustomers returns the filtered customers table with invoice aggregates.
func (s *CustomerService) ListCustomers(ctx context.Context, query string) ([]*entity.CustomerSummary, error) {
	return s.Repo.ListFiltered(query)
}

// AllCustomers feeds the customer picker on the invoice form.
func (s *CustomerService) AllCustomers(ctx context.Context) ([]*entity.Customer, error) {
	return s.Repo.GetAll()
}

// UploadAvatar stores a customer image in GCS and records its public URL.
func (s *CustomerService) UploadAvatar(ctx context.Context, customerID string, r io.Reader, filename, contentType string) (string, error) {
	if _, err := s.Repo.GetByID(customerID); err != nil {
		return "", err
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("customers", customerID, id+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Repo.UpdateImageURL(customerID, url); err != nil {
		return "", err
	}
	s.Logger.WithFields(logrus.Fields{"customer_id": customerID, "object": objectPath}).Info("customer avatar updated")
	return url, nil
}
