package repositories

import (
	"context"

	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
)

// RateCacheReader defines read operations for cached exchange rates
type RateCacheReader interface {
	// FindLatestRate retrieves the most recently fetched entry for the exact
	// ordered pair (from, to), regardless of age. Returns apperrors.ErrNotFound
	// when no entry exists for the pair.
	FindLatestRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.RateCacheEntry, error)
}

// RateCacheWriter defines write operations for cached exchange rates
type RateCacheWriter interface {
	// SaveRate appends a new cache entry. Entries are never updated or
	// deleted here; refresh means a new row.
	SaveRate(ctx context.Context, entry domain.RateCacheEntry) error
}

// RateCacheRepositoryFacade combines all rate-cache repository interfaces
type RateCacheRepositoryFacade interface {
	RateCacheReader
	RateCacheWriter
}
