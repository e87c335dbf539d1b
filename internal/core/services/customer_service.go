package services

import (
	"context"
	"fmt"
	"time"

	"github.com/invodesk/invoice_analytics_app/internal/apperrors"
	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
	portsrepo "github.com/invodesk/invoice_analytics_app/internal/core/ports/repositories"
	"github.com/invodesk/invoice_analytics_app/internal/dto"
	"github.com/google/uuid"
)

// CustomerService provides business logic for customers.
type CustomerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
	now          func() time.Time
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		now:          time.Now,
	}
}

// CreateCustomer persists a new customer.
func (s *CustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	now := s.now()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer in service: %w", err)
	}
	return &customer, nil
}

// GetCustomerByID retrieves a non-deleted customer.
func (s *CustomerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer by ID in service: %w", err)
	}
	if customer.IsDeleted() {
		return nil, fmt.Errorf("customer %s: %w", customerID, apperrors.ErrNotFound)
	}
	return customer, nil
}

// FindCustomerByName retrieves the first non-deleted customer whose name
// contains the fragment (case-insensitive).
func (s *CustomerService) FindCustomerByName(ctx context.Context, nameFragment string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByName(ctx, nameFragment)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer by name in service: %w", err)
	}
	return customer, nil
}

// ListCustomers retrieves non-deleted customers with paging.
func (s *CustomerService) ListCustomers(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers in service: %w", err)
	}
	if customers == nil {
		return []domain.Customer{}, nil
	}
	return customers, nil
}

// UpdateCustomer updates an existing customer's name. Updating a soft-deleted
// customer is a validation error, matching the delete semantics.
func (s *CustomerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer for update: %w", err)
	}
	if customer.IsDeleted() {
		return nil, fmt.Errorf("%w: customer %s is already deleted", apperrors.ErrValidation, customerID)
	}

	customer.Name = req.Name
	customer.LastUpdatedAt = s.now()

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		return nil, fmt.Errorf("failed to update customer in service: %w", err)
	}
	return customer, nil
}

// DeleteCustomer soft deletes a customer and cascades the same deletion
// timestamp to all of its non-deleted invoices.
func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID string) error {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to load customer for delete: %w", err)
	}
	if customer.IsDeleted() {
		return fmt.Errorf("%w: customer %s is already deleted", apperrors.ErrValidation, customerID)
	}

	if err := s.customerRepo.MarkCustomerDeleted(ctx, customerID, s.now()); err != nil {
		return fmt.Errorf("failed to delete customer in service: %w", err)
	}
	return nil
}
