package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice represents an amount billed to a customer in a given currency.
// AmountInDefaultCurrency and ExchangeRate are computed at write time from
// the rate in effect when the invoice was created or last updated.
type Invoice struct {
	InvoiceID               string          `json:"invoiceID"` // Primary Key (UUID)
	CustomerID              string          `json:"customerID"`
	Amount                  decimal.Decimal `json:"amount"`
	Currency                string          `json:"currency"`        // 3-letter code, uppercase
	DefaultCurrency         string          `json:"defaultCurrency"` // Reporting currency at conversion time
	AmountInDefaultCurrency decimal.Decimal `json:"amountInDefaultCurrency"`
	ExchangeRate            decimal.Decimal `json:"exchangeRate"`
	DeletedAt               *time.Time      `json:"deletedAt,omitempty"`
	AuditFields
}

// IsDeleted reports whether the invoice has been soft deleted.
func (i *Invoice) IsDeleted() bool {
	return i.DeletedAt != nil
}
