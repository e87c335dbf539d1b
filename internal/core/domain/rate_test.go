package domain_test

import (
	"testing"
	"time"

	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRateCacheEntryFresh(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	ttl := time.Hour

	tests := []struct {
		name      string
		fetchedAt time.Time
		want      bool
	}{
		{"just fetched", now, true},
		{"within ttl", now.Add(-59 * time.Minute), true},
		{"exactly ttl old", now.Add(-ttl), false},
		{"older than ttl", now.Add(-2 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := domain.RateCacheEntry{
				FromCurrency: "EUR",
				ToCurrency:   "USD",
				Rate:         decimal.RequireFromString("1.10"),
				FetchedAt:    tt.fetchedAt,
			}
			assert.Equal(t, tt.want, entry.Fresh(now, ttl))
		})
	}
}
