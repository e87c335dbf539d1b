package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/invodesk/invoice_analytics_app/internal/apperrors"
	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
	portsrepo "github.com/invodesk/invoice_analytics_app/internal/core/ports/repositories"
	portssvc "github.com/invodesk/invoice_analytics_app/internal/core/ports/services"
	"github.com/invodesk/invoice_analytics_app/internal/dto"
	"github.com/google/uuid"
)

// InvoiceService provides business logic for invoices. Amounts are converted
// to the default currency through the rate cache at create and update time.
type InvoiceService struct {
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	customerRepo portsrepo.CustomerReader
	rateService  portssvc.RateSvcFacade
	now          func() time.Time
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, customerRepo portsrepo.CustomerReader, rateService portssvc.RateSvcFacade) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		rateService:  rateService,
		now:          time.Now,
	}
}

// CreateInvoice persists a new invoice. The customer must exist and be
// non-deleted; a provider failure on a cold rate cache rejects the create.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: invoice amount must be positive", apperrors.ErrValidation)
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer for invoice: %w", err)
	}
	if customer.IsDeleted() {
		return nil, fmt.Errorf("%w: customer %s is deleted", apperrors.ErrValidation, req.CustomerID)
	}

	quote, err := s.rateService.GetRateToDefault(ctx, req.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate for invoice: %w", err)
	}

	now := s.now()
	invoice := domain.Invoice{
		InvoiceID:               uuid.NewString(),
		CustomerID:              req.CustomerID,
		Amount:                  req.Amount,
		Currency:                strings.ToUpper(req.Currency),
		DefaultCurrency:         s.rateService.DefaultCurrency(),
		ExchangeRate:            quote.Rate,
		AmountInDefaultCurrency: req.Amount.Mul(quote.Rate),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice in service: %w", err)
	}
	return &invoice, nil
}

// GetInvoiceByID retrieves a non-deleted invoice.
func (s *InvoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice by ID in service: %w", err)
	}
	if invoice.IsDeleted() {
		return nil, fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
	}
	return invoice, nil
}

// ListInvoices retrieves non-deleted invoices, optionally for one customer.
func (s *InvoiceService) ListInvoices(ctx context.Context, customerID *string, limit, offset int) ([]domain.Invoice, error) {
	filter := portsrepo.InvoiceFilter{CustomerID: customerID}
	invoices, err := s.invoiceRepo.ListInvoices(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices in service: %w", err)
	}
	if invoices == nil {
		return []domain.Invoice{}, nil
	}
	return invoices, nil
}

// UpdateInvoice applies the non-nil fields of the request and recomputes the
// exchange rate and converted amount from the current rate cache state.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice for update: %w", err)
	}
	if invoice.IsDeleted() {
		return nil, fmt.Errorf("%w: invoice %s is deleted", apperrors.ErrValidation, invoiceID)
	}

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: invoice amount must be positive", apperrors.ErrValidation)
		}
		invoice.Amount = *req.Amount
	}
	if req.Currency != nil {
		invoice.Currency = strings.ToUpper(*req.Currency)
	}

	quote, err := s.rateService.GetRateToDefault(ctx, invoice.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate for invoice update: %w", err)
	}

	invoice.ExchangeRate = quote.Rate
	invoice.AmountInDefaultCurrency = invoice.Amount.Mul(quote.Rate)
	invoice.LastUpdatedAt = s.now()

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice in service: %w", err)
	}
	return invoice, nil
}

// DeleteInvoice soft deletes an invoice.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to load invoice for delete: %w", err)
	}
	if invoice.IsDeleted() {
		return fmt.Errorf("%w: invoice %s is already deleted", apperrors.ErrValidation, invoiceID)
	}

	if err := s.invoiceRepo.MarkInvoiceDeleted(ctx, invoiceID, s.now()); err != nil {
		return fmt.Errorf("failed to delete invoice in service: %w", err)
	}
	return nil
}
