package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/invodesk/invoice_analytics_app/internal/apperrors"
	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
	portsrepo "github.com/invodesk/invoice_analytics_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRateCacheRepository implements the rate cache repository using pgxpool.
//
// The table is append-only: SaveRate always inserts, refreshes included.
// There is deliberately no uniqueness constraint on the pair — concurrent
// check-then-act callers may insert duplicates, and FindLatestRate's
// most-recent-by-fetched_at read keeps results correct anyway.
type PgxRateCacheRepository struct {
	BaseRepository
}

func newPgxRateCacheRepository(db *pgxpool.Pool) *PgxRateCacheRepository {
	return &PgxRateCacheRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.RateCacheRepositoryFacade = (*PgxRateCacheRepository)(nil)

// SaveRate appends a new cache entry.
func (r *PgxRateCacheRepository) SaveRate(ctx context.Context, entry domain.RateCacheEntry) error {
	query := `
        INSERT INTO exchange_rate_cache (entry_id, from_currency, to_currency, rate, fetched_at)
        VALUES ($1, $2, $3, $4, $5);
    `
	_, err := r.Pool.Exec(ctx, query,
		entry.EntryID,
		entry.FromCurrency,
		entry.ToCurrency,
		entry.Rate,
		entry.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save rate cache entry: %w", err)
	}
	return nil
}

// FindLatestRate retrieves the most recently fetched entry for the exact
// ordered pair, regardless of age. Freshness is the service's concern.
func (r *PgxRateCacheRepository) FindLatestRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.RateCacheEntry, error) {
	query := `
		SELECT entry_id, from_currency, to_currency, rate, fetched_at
		FROM exchange_rate_cache
		WHERE from_currency = $1 AND to_currency = $2
		ORDER BY fetched_at DESC
		LIMIT 1;
	`
	var entry domain.RateCacheEntry
	err := r.Pool.QueryRow(ctx, query, fromCurrency, toCurrency).Scan(
		&entry.EntryID,
		&entry.FromCurrency,
		&entry.ToCurrency,
		&entry.Rate,
		&entry.FetchedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("rate cache entry for %s/%s: %w", fromCurrency, toCurrency, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find rate cache entry: %w", err)
	}
	return &entry, nil
}
