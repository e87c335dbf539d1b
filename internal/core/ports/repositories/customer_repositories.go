package repositories

import (
	"context"
	"time"

	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a customer by ID, including soft-deleted ones.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// FindCustomerByName retrieves the first non-deleted customer whose name
	// contains the given fragment (case-insensitive).
	FindCustomerByName(ctx context.Context, nameFragment string) (*domain.Customer, error)

	// ListCustomers retrieves non-deleted customers ordered by creation time.
	ListCustomers(ctx context.Context, limit, offset int) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer updates a non-deleted customer's mutable fields.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// MarkCustomerDeleted soft deletes a customer and cascades the same
	// deletion timestamp to its non-deleted invoices.
	MarkCustomerDeleted(ctx context.Context, customerID string, deletedAt time.Time) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
