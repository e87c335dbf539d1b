package services

import (
	"context"

	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
	"github.com/invodesk/invoice_analytics_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a specific non-deleted invoice.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves non-deleted invoices, optionally filtered by
	// customer, with limit/offset paging.
	ListInvoices(ctx context.Context, customerID *string, limit, offset int) ([]domain.Invoice, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice persists a new invoice, converting its amount to the
	// default currency via the rate cache.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error)

	// UpdateInvoice updates an invoice's amount and/or currency and
	// recomputes the converted amount.
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error)

	// DeleteInvoice soft deletes an invoice.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
