package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
	portsrepo "github.com/invodesk/invoice_analytics_app/internal/core/ports/repositories"
	portssvc "github.com/invodesk/invoice_analytics_app/internal/core/ports/services"
	"github.com/invodesk/invoice_analytics_app/internal/dto"
	"github.com/shopspring/decimal"
)

// analyticsListLimit bounds how many invoices one aggregation will scan.
const analyticsListLimit = 10000

// AnalyticsService aggregates invoice amounts in a target currency,
// converting each invoice on the fly through the rate cache.
type AnalyticsService struct {
	invoiceRepo portsrepo.InvoiceReader
	rateService portssvc.RateSvcFacade
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(invoiceRepo portsrepo.InvoiceReader, rateService portssvc.RateSvcFacade) *AnalyticsService {
	return &AnalyticsService{
		invoiceRepo: invoiceRepo,
		rateService: rateService,
	}
}

// TotalRevenue sums matching invoices in the target currency, rounded to 2
// decimal places. No invoices yields a zero total and zero provider calls.
func (s *AnalyticsService) TotalRevenue(ctx context.Context, req dto.AnalyticsRequest) (*dto.TotalRevenueResponse, error) {
	target := s.targetCurrency(req)
	invoices, err := s.matchingInvoices(ctx, req)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for i := range invoices {
		converted, err := s.convertInvoice(ctx, &invoices[i], target)
		if err != nil {
			return nil, err
		}
		total = total.Add(converted)
	}

	return &dto.TotalRevenueResponse{
		TotalRevenue: total.Round(2),
		Currency:     target,
		InvoiceCount: len(invoices),
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		CustomerID:   req.CustomerID,
	}, nil
}

// AverageInvoice computes the mean invoice size in the target currency,
// rounded to 2 decimal places.
func (s *AnalyticsService) AverageInvoice(ctx context.Context, req dto.AnalyticsRequest) (*dto.AverageInvoiceResponse, error) {
	target := s.targetCurrency(req)
	invoices, err := s.matchingInvoices(ctx, req)
	if err != nil {
		return nil, err
	}

	average := decimal.Zero
	if len(invoices) > 0 {
		total := decimal.Zero
		for i := range invoices {
			converted, err := s.convertInvoice(ctx, &invoices[i], target)
			if err != nil {
				return nil, err
			}
			total = total.Add(converted)
		}
		average = total.Div(decimal.NewFromInt(int64(len(invoices))))
	}

	return &dto.AverageInvoiceResponse{
		AverageInvoiceSize: average.Round(2),
		Currency:           target,
		InvoiceCount:       len(invoices),
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		CustomerID:         req.CustomerID,
	}, nil
}

func (s *AnalyticsService) targetCurrency(req dto.AnalyticsRequest) string {
	if req.TargetCurrency != nil && *req.TargetCurrency != "" {
		return strings.ToUpper(*req.TargetCurrency)
	}
	return s.rateService.DefaultCurrency()
}

func (s *AnalyticsService) matchingInvoices(ctx context.Context, req dto.AnalyticsRequest) ([]domain.Invoice, error) {
	filter := portsrepo.InvoiceFilter{
		CustomerID: req.CustomerID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	invoices, err := s.invoiceRepo.ListInvoices(ctx, filter, analyticsListLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for analytics: %w", err)
	}
	return invoices, nil
}

// convertInvoice converts one invoice amount to the target currency. Same
// currency returns the original amount without touching the rate cache.
func (s *AnalyticsService) convertInvoice(ctx context.Context, invoice *domain.Invoice, target string) (decimal.Decimal, error) {
	if strings.EqualFold(invoice.Currency, target) {
		return invoice.Amount, nil
	}
	quote, err := s.rateService.GetRate(ctx, invoice.Currency, target)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to convert invoice %s to %s: %w", invoice.InvoiceID, target, err)
	}
	return invoice.Amount.Mul(quote.Rate), nil
}
