package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"starpro_store/internal/model"
	"starpro_store/internal/repository"
)

// CustomerService manages the customers collection on behalf of the owner.
type CustomerService interface {
	AddCustomer(ctx context.Context, req model.AddCustomerRequest) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
}

type customerService struct {
	store  *repository.RecordStore
	logger *slog.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(store *repository.RecordStore, logger *slog.Logger) CustomerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &customerService{store: store, logger: logger}
}

// AddCustomer records a customer without any uniqueness check; the same phone
// may be added several times.
func (s *customerService) AddCustomer(ctx context.Context, req model.AddCustomerRequest) (*model.Customer, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || phone == "" {
		return nil, ErrMissingField
	}

	customer, err := s.store.PrependCustomer(ctx, model.Customer{
		Name:     name,
		Phone:    phone,
		Address:  strings.TrimSpace(req.Address),
		AltPhone: strings.TrimSpace(req.AltPhone),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add customer: %w", err)
	}
	s.logger.Info("customer added", "customer_id", customer.ID, "name", customer.Name)
	return &customer, nil
}

func (s *customerService) List(_ context.Context) ([]model.Customer, error) {
	return s.store.Customers(), nil
}
