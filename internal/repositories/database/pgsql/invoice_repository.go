package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/invodesk/invoice_analytics_app/internal/apperrors"
	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
	portsrepo "github.com/invodesk/invoice_analytics_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxInvoiceRepository implements the invoice repository using pgxpool.
type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(db *pgxpool.Pool) *PgxInvoiceRepository {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

// SaveInvoice inserts a new invoice row.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	query := `
        INSERT INTO invoices (
            invoice_id, customer_id, amount, currency, default_currency,
            amount_in_default_currency, exchange_rate, created_at, last_updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.Pool.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.CustomerID,
		invoice.Amount,
		invoice.Currency,
		invoice.DefaultCurrency,
		invoice.AmountInDefaultCurrency,
		invoice.ExchangeRate,
		invoice.CreatedAt,
		invoice.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice %s: %w", invoice.InvoiceID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save invoice: %w", err)
	}
	return nil
}

// FindInvoiceByID retrieves an invoice by ID, including soft-deleted ones.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT invoice_id, customer_id, amount, currency, default_currency,
		       amount_in_default_currency, exchange_rate, created_at, last_updated_at, deleted_at
		FROM invoices
		WHERE invoice_id = $1;
	`
	var invoice domain.Invoice
	err := r.Pool.QueryRow(ctx, query, invoiceID).Scan(
		&invoice.InvoiceID,
		&invoice.CustomerID,
		&invoice.Amount,
		&invoice.Currency,
		&invoice.DefaultCurrency,
		&invoice.AmountInDefaultCurrency,
		&invoice.ExchangeRate,
		&invoice.CreatedAt,
		&invoice.LastUpdatedAt,
		&invoice.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}
	return &invoice, nil
}

// ListInvoices retrieves non-deleted invoices matching the filter, ordered by
// creation time.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceFilter, limit, offset int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT invoice_id, customer_id, amount, currency, default_currency,
		       amount_in_default_currency, exchange_rate, created_at, last_updated_at, deleted_at
		FROM invoices
		WHERE deleted_at IS NULL`
	args := []interface{}{}
	argNum := 1

	if filter.CustomerID != nil {
		query += fmt.Sprintf(" AND customer_id = $%d", argNum)
		args = append(args, *filter.CustomerID)
		argNum++
	}
	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argNum)
		args = append(args, *filter.StartDate)
		argNum++
	}
	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argNum)
		args = append(args, *filter.EndDate)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at LIMIT $%d OFFSET $%d;", argNum, argNum+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		var invoice domain.Invoice
		err := rows.Scan(
			&invoice.InvoiceID,
			&invoice.CustomerID,
			&invoice.Amount,
			&invoice.Currency,
			&invoice.DefaultCurrency,
			&invoice.AmountInDefaultCurrency,
			&invoice.ExchangeRate,
			&invoice.CreatedAt,
			&invoice.LastUpdatedAt,
			&invoice.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", rows.Err())
	}
	return invoices, nil
}

// UpdateInvoice updates a non-deleted invoice's mutable fields.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	query := `
        UPDATE invoices
        SET amount = $1, currency = $2, amount_in_default_currency = $3,
            exchange_rate = $4, last_updated_at = $5
        WHERE invoice_id = $6 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		invoice.Amount,
		invoice.Currency,
		invoice.AmountInDefaultCurrency,
		invoice.ExchangeRate,
		invoice.LastUpdatedAt,
		invoice.InvoiceID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update invoice query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("invoice not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

// MarkInvoiceDeleted soft deletes an invoice.
func (r *PgxInvoiceRepository) MarkInvoiceDeleted(ctx context.Context, invoiceID string, deletedAt time.Time) error {
	query := `
        UPDATE invoices
        SET deleted_at = $1, last_updated_at = $1
        WHERE invoice_id = $2 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, deletedAt, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to mark invoice as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("invoice not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
