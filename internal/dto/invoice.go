package dto

import (
	"time"

	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the data needed to create a new invoice.
// Amount positivity is validated at the service layer since decimal.Decimal
// does not support the numeric binding validators.
type CreateInvoiceRequest struct {
	CustomerID string          `json:"customerID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Currency   string          `json:"currency" binding:"required,len=3"`
}

// UpdateInvoiceRequest defines the data accepted when updating an invoice.
// Nil fields are left unchanged.
type UpdateInvoiceRequest struct {
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Currency *string          `json:"currency,omitempty" binding:"omitempty,len=3"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID               string          `json:"invoiceID"`
	CustomerID              string          `json:"customerID"`
	Amount                  decimal.Decimal `json:"amount"`
	Currency                string          `json:"currency"`
	DefaultCurrency         string          `json:"defaultCurrency"`
	AmountInDefaultCurrency decimal.Decimal `json:"amountInDefaultCurrency"`
	ExchangeRate            decimal.Decimal `json:"exchangeRate"`
	CreatedAt               time.Time       `json:"createdAt"`
	LastUpdatedAt           time.Time       `json:"lastUpdatedAt"`
	DeletedAt               *time.Time      `json:"deletedAt,omitempty"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:               inv.InvoiceID,
		CustomerID:              inv.CustomerID,
		Amount:                  inv.Amount,
		Currency:                inv.Currency,
		DefaultCurrency:         inv.DefaultCurrency,
		AmountInDefaultCurrency: inv.AmountInDefaultCurrency,
		ExchangeRate:            inv.ExchangeRate,
		CreatedAt:               inv.CreatedAt,
		LastUpdatedAt:           inv.LastUpdatedAt,
		DeletedAt:               inv.DeletedAt,
	}
}

// ToListInvoiceResponse converts a slice of domain.Invoice to InvoiceResponse DTOs
func ToListInvoiceResponse(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		res[i] = ToInvoiceResponse(&inv)
	}
	return res
}
