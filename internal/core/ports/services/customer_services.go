package services

import (
	"context"

	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
	"github.com/invodesk/invoice_analytics_app/internal/dto"
)

// CustomerReaderSvc defines read operations for customer data
type CustomerReaderSvc interface {
	// GetCustomerByID retrieves a specific non-deleted customer.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// FindCustomerByName retrieves the first non-deleted customer whose name
	// contains the fragment (case-insensitive).
	FindCustomerByName(ctx context.Context, nameFragment string) (*domain.Customer, error)

	// ListCustomers retrieves non-deleted customers with limit/offset paging.
	ListCustomers(ctx context.Context, limit, offset int) ([]domain.Customer, error)
}

// CustomerWriterSvc defines write operations for customer data
type CustomerWriterSvc interface {
	// CreateCustomer persists a new customer.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error)

	// UpdateCustomer updates an existing customer.
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error)

	// DeleteCustomer soft deletes a customer and cascades to its invoices.
	DeleteCustomer(ctx context.Context, customerID string) error
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}
