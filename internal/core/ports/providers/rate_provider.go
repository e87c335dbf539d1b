package providers

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider is the external service that supplies authoritative current
// exchange rates. Implementations must return apperrors.ErrRateUnavailable
// (possibly wrapped) on any failure and must bound the call with a timeout.
type RateProvider interface {
	// FetchRate returns units of toCurrency per unit of fromCurrency.
	FetchRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error)
}
