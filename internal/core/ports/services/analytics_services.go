package services

import (
	"context"

	"github.com/invodesk/invoice_analytics_app/internal/dto"
)

// AnalyticsSvcFacade provides revenue aggregations across invoices, converted
// on the fly to a target currency through the rate cache.
type AnalyticsSvcFacade interface {
	// TotalRevenue sums all matching invoices in the target currency.
	TotalRevenue(ctx context.Context, req dto.AnalyticsRequest) (*dto.TotalRevenueResponse, error)

	// AverageInvoice computes the mean invoice size in the target currency.
	AverageInvoice(ctx context.Context, req dto.AnalyticsRequest) (*dto.AverageInvoiceResponse, error)
}
