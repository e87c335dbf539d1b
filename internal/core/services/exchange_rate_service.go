package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/invodesk/invoice_analytics_app/internal/apperrors"
	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
	portsprov "github.com/invodesk/invoice_analytics_app/internal/core/ports/providers"
	portsrepo "github.com/invodesk/invoice_analytics_app/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultRateTTL is how long a cached rate is trusted before the provider is
// consulted again.
const DefaultRateTTL = time.Hour

// ExchangeRateService memoizes provider rates in an append-only store.
//
// A lookup serves, in order: the identity rate for same-currency pairs, the
// freshest stored entry for the exact ordered pair, the reciprocal of a fresh
// entry for the reverse pair (computed per call, never persisted), and
// finally the external provider, whose result is persisted as a new row.
// Concurrent lookups for the same pair may race between the freshness check
// and the insert; the duplicate row is harmless because readers always take
// the most recent row.
type ExchangeRateService struct {
	rateRepo        portsrepo.RateCacheRepositoryFacade
	provider        portsprov.RateProvider
	defaultCurrency string
	ttl             time.Duration
	now             func() time.Time
}

// ExchangeRateServiceOption configures an ExchangeRateService.
type ExchangeRateServiceOption func(*ExchangeRateService)

// WithClock overrides the time source, letting tests control TTL expiry.
func WithClock(now func() time.Time) ExchangeRateServiceOption {
	return func(s *ExchangeRateService) {
		s.now = now
	}
}

// WithRateTTL overrides the freshness window for cached entries.
func WithRateTTL(ttl time.Duration) ExchangeRateServiceOption {
	return func(s *ExchangeRateService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.RateCacheRepositoryFacade, provider portsprov.RateProvider, defaultCurrency string, opts ...ExchangeRateServiceOption) *ExchangeRateService {
	s := &ExchangeRateService{
		rateRepo:        rateRepo,
		provider:        provider,
		defaultCurrency: strings.ToUpper(strings.TrimSpace(defaultCurrency)),
		ttl:             DefaultRateTTL,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultCurrency returns the configured reporting currency code.
func (s *ExchangeRateService) DefaultCurrency() string {
	return s.defaultCurrency
}

// GetRateToDefault returns the rate from the given currency to the configured
// default currency.
func (s *ExchangeRateService) GetRateToDefault(ctx context.Context, fromCurrency string) (*domain.RateQuote, error) {
	return s.GetRate(ctx, fromCurrency, s.defaultCurrency)
}

// GetRate returns the exchange rate for the ordered pair (fromCurrency,
// toCurrency). The quote's Source reports whether the provider was called.
func (s *ExchangeRateService) GetRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.RateQuote, error) {
	from, err := normalizeCurrencyCode(fromCurrency)
	if err != nil {
		return nil, err
	}
	to, err := normalizeCurrencyCode(toCurrency)
	if err != nil {
		return nil, err
	}

	now := s.now()

	if from == to {
		return &domain.RateQuote{
			FromCurrency: from,
			ToCurrency:   to,
			Rate:         decimal.NewFromInt(1),
			Source:       domain.RateSourceCached,
			AsOf:         now,
		}, nil
	}

	// Direct pair, most recent row wins.
	entry, err := s.rateRepo.FindLatestRate(ctx, from, to)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to read rate cache for %s/%s: %w", from, to, err)
	}
	if entry != nil && entry.Fresh(now, s.ttl) {
		return &domain.RateQuote{
			FromCurrency: from,
			ToCurrency:   to,
			Rate:         entry.Rate,
			Source:       domain.RateSourceCached,
			AsOf:         entry.FetchedAt,
		}, nil
	}

	// Reverse pair: serve the reciprocal without persisting it, so the
	// inverse can never go stale independently of its source row.
	inverse, err := s.rateRepo.FindLatestRate(ctx, to, from)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to read rate cache for %s/%s: %w", to, from, err)
	}
	if inverse != nil && inverse.Fresh(now, s.ttl) && inverse.Rate.IsPositive() {
		return &domain.RateQuote{
			FromCurrency: from,
			ToCurrency:   to,
			Rate:         decimal.NewFromInt(1).Div(inverse.Rate),
			Source:       domain.RateSourceCached,
			AsOf:         inverse.FetchedAt,
		}, nil
	}

	return s.fetchAndStore(ctx, from, to)
}

// fetchAndStore asks the provider for a rate and appends it to the cache.
// Nothing is written on provider failure; expired entries are never served.
func (s *ExchangeRateService) fetchAndStore(ctx context.Context, from, to string) (*domain.RateQuote, error) {
	rate, err := s.provider.FetchRate(ctx, from, to)
	if err != nil {
		if !errors.Is(err, apperrors.ErrRateUnavailable) {
			err = fmt.Errorf("%w: %v", apperrors.ErrRateUnavailable, err)
		}
		return nil, fmt.Errorf("provider lookup for %s/%s failed: %w", from, to, err)
	}
	if !rate.IsPositive() {
		return nil, fmt.Errorf("provider lookup for %s/%s returned non-positive rate %s: %w", from, to, rate, apperrors.ErrRateUnavailable)
	}

	fetchedAt := s.now()
	entry := domain.RateCacheEntry{
		EntryID:      uuid.NewString(),
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         rate,
		FetchedAt:    fetchedAt,
	}
	if err := s.rateRepo.SaveRate(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to persist fetched rate for %s/%s: %w", from, to, err)
	}

	return &domain.RateQuote{
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         rate,
		Source:       domain.RateSourceFetched,
		AsOf:         fetchedAt,
	}, nil
}

// normalizeCurrencyCode uppercases a code and rejects anything that is not
// three letters. Whether the code denotes a real currency is left to the
// provider.
func normalizeCurrencyCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: currency code %q must be 3 letters", apperrors.ErrValidation, code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: currency code %q must be 3 letters", apperrors.ErrValidation, code)
		}
	}
	return code, nil
}
