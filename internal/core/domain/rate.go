package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource indicates where a rate quote came from.
type RateSource string

const (
	// RateSourceCached means the quote was answered from a stored entry
	// (directly, by inversion, or by the same-currency identity).
	RateSourceCached RateSource = "CACHED"
	// RateSourceFetched means the quote required a call to the external provider.
	RateSourceFetched RateSource = "FETCHED"
)

// RateCacheEntry is one memoized provider result for an ordered currency pair.
// Entries are immutable: a refresh inserts a new row rather than mutating an
// old one, and readers always take the most recent row by FetchedAt.
type RateCacheEntry struct {
	EntryID      string          `json:"entryID"` // Primary Key (UUID)
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`      // Units of ToCurrency per unit of FromCurrency, > 0
	FetchedAt    time.Time       `json:"fetchedAt"` // When the provider supplied the rate, not when it was read
}

// Fresh reports whether the entry is still inside its time-to-live at the
// given instant.
func (e *RateCacheEntry) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) < ttl
}

// RateQuote is the answer the rate cache gives its callers.
type RateQuote struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	Source       RateSource      `json:"source"`
	AsOf         time.Time       `json:"asOf"` // FetchedAt of the backing entry
}
