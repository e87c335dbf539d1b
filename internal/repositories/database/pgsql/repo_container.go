package pgsql

import (
	portsrepo "github.com/invodesk/invoice_analytics_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgsql repositories over one connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CustomerRepo:  newPgxCustomerRepository(dbPool),
		InvoiceRepo:   newPgxInvoiceRepository(dbPool),
		RateCacheRepo: newPgxRateCacheRepository(dbPool),
	}
}
