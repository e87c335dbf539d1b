package services

import (
	"context"

	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
)

// RateSvcFacade is the interface the rest of the application uses to obtain
// exchange rates. Implementations memoize provider results with a TTL.
type RateSvcFacade interface {
	// GetRate returns the rate from fromCurrency to toCurrency, serving from
	// the cache (directly or by inversion) when a fresh entry exists and
	// falling back to the external provider otherwise. Provider failures
	// surface as apperrors.ErrRateUnavailable.
	GetRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.RateQuote, error)

	// GetRateToDefault is GetRate with the configured default currency as target.
	GetRateToDefault(ctx context.Context, fromCurrency string) (*domain.RateQuote, error)

	// DefaultCurrency returns the configured reporting currency code.
	DefaultCurrency() string
}
