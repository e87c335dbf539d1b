package repositories

import (
	"context"
	"time"

	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
)

// InvoiceFilter narrows invoice list and analytics queries.
// Nil fields are ignored.
type InvoiceFilter struct {
	CustomerID *string
	StartDate  *time.Time // CreatedAt >= StartDate
	EndDate    *time.Time // CreatedAt <= EndDate
}

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice by ID, including soft-deleted ones.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves non-deleted invoices matching the filter,
	// ordered by creation time.
	ListInvoices(ctx context.Context, filter InvoiceFilter, limit, offset int) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice updates a non-deleted invoice's mutable fields.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// MarkInvoiceDeleted soft deletes an invoice.
	MarkInvoiceDeleted(ctx context.Context, invoiceID string, deletedAt time.Time) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
