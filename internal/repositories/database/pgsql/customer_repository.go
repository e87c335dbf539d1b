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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolationCode is the PostgreSQL error code for unique constraint violations.
const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// PgxCustomerRepository implements the customer repository using pgxpool.
type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(db *pgxpool.Pool) *PgxCustomerRepository {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

// SaveCustomer inserts a new customer row.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
        INSERT INTO customers (customer_id, name, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4);
    `
	_, err := r.Pool.Exec(ctx, query,
		customer.CustomerID,
		customer.Name,
		customer.CreatedAt,
		customer.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("customer %s: %w", customer.CustomerID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by ID. Soft-deleted customers are
// returned with DeletedAt set so callers can distinguish deleted from missing.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `
		SELECT customer_id, name, created_at, last_updated_at, deleted_at
		FROM customers
		WHERE customer_id = $1;
	`
	var customer domain.Customer
	err := r.Pool.QueryRow(ctx, query, customerID).Scan(
		&customer.CustomerID,
		&customer.Name,
		&customer.CreatedAt,
		&customer.LastUpdatedAt,
		&customer.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("customer %s: %w", customerID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}
	return &customer, nil
}

// FindCustomerByName retrieves the first non-deleted customer whose name
// contains the fragment, case-insensitively.
func (r *PgxCustomerRepository) FindCustomerByName(ctx context.Context, nameFragment string) (*domain.Customer, error) {
	query := `
		SELECT customer_id, name, created_at, last_updated_at, deleted_at
		FROM customers
		WHERE name ILIKE '%' || $1 || '%' AND deleted_at IS NULL
		ORDER BY created_at
		LIMIT 1;
	`
	var customer domain.Customer
	err := r.Pool.QueryRow(ctx, query, nameFragment).Scan(
		&customer.CustomerID,
		&customer.Name,
		&customer.CreatedAt,
		&customer.LastUpdatedAt,
		&customer.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("customer named %q: %w", nameFragment, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find customer by name: %w", err)
	}
	return &customer, nil
}

// ListCustomers retrieves non-deleted customers ordered by creation time.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT customer_id, name, created_at, last_updated_at, deleted_at
        FROM customers
        WHERE deleted_at IS NULL
        ORDER BY created_at
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var customer domain.Customer
		err := rows.Scan(
			&customer.CustomerID,
			&customer.Name,
			&customer.CreatedAt,
			&customer.LastUpdatedAt,
			&customer.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, customer)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", rows.Err())
	}
	return customers, nil
}

// UpdateCustomer updates a non-deleted customer's mutable fields.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
        UPDATE customers
        SET name = $1, last_updated_at = $2
        WHERE customer_id = $3 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		customer.Name,
		customer.LastUpdatedAt,
		customer.CustomerID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update customer query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("customer not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

// MarkCustomerDeleted soft deletes a customer and, in the same transaction,
// stamps the same deletion time on all of its non-deleted invoices.
func (r *PgxCustomerRepository) MarkCustomerDeleted(ctx context.Context, customerID string, deletedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `
        UPDATE customers
        SET deleted_at = $1, last_updated_at = $1
        WHERE customer_id = $2 AND deleted_at IS NULL;
    `, deletedAt, customerID)
	if err != nil {
		_ = r.Rollback(ctx, tx)
		return fmt.Errorf("failed to mark customer as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		_ = r.Rollback(ctx, tx)
		return fmt.Errorf("customer not found or already deleted: %w", apperrors.ErrNotFound)
	}

	_, err = tx.Exec(ctx, `
        UPDATE invoices
        SET deleted_at = $1, last_updated_at = $1
        WHERE customer_id = $2 AND deleted_at IS NULL;
    `, deletedAt, customerID)
	if err != nil {
		_ = r.Rollback(ctx, tx)
		return fmt.Errorf("failed to cascade soft delete to invoices: %w", err)
	}

	return r.Commit(ctx, tx)
}
