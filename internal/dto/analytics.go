package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsRequest defines the common filters for analytics endpoints.
// TargetCurrency defaults to the configured default currency when omitted.
type AnalyticsRequest struct {
	TargetCurrency *string    `json:"targetCurrency,omitempty" binding:"omitempty,len=3"`
	CustomerID     *string    `json:"customerID,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
}

// TotalRevenueResponse defines the result of a total revenue aggregation.
type TotalRevenueResponse struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	Currency     string          `json:"currency"`
	InvoiceCount int             `json:"invoiceCount"`
	StartDate    *time.Time      `json:"startDate,omitempty"`
	EndDate      *time.Time      `json:"endDate,omitempty"`
	CustomerID   *string         `json:"customerID,omitempty"`
}

// AverageInvoiceResponse defines the result of an average invoice size aggregation.
type AverageInvoiceResponse struct {
	AverageInvoiceSize decimal.Decimal `json:"averageInvoiceSize"`
	Currency           string          `json:"currency"`
	InvoiceCount       int             `json:"invoiceCount"`
	StartDate          *time.Time      `json:"startDate,omitempty"`
	EndDate            *time.Time      `json:"endDate,omitempty"`
	CustomerID         *string         `json:"customerID,omitempty"`
}
