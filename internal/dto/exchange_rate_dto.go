package dto

import (
	"time"

	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateQuoteResponse defines the structure for API responses containing a rate quote.
type RateQuoteResponse struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	Source       string          `json:"source"` // CACHED or FETCHED
	AsOf         time.Time       `json:"asOf"`
}

// ToRateQuoteResponse converts a domain.RateQuote to RateQuoteResponse DTO
func ToRateQuoteResponse(q *domain.RateQuote) RateQuoteResponse {
	return RateQuoteResponse{
		FromCurrency: q.FromCurrency,
		ToCurrency:   q.ToCurrency,
		Rate:         q.Rate,
		Source:       string(q.Source),
		AsOf:         q.AsOf,
	}
}
