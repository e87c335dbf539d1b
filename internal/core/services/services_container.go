package services

import (
	portsprov "github.com/invodesk/invoice_analytics_app/internal/core/ports/providers"
	portsrepo "github.com/invodesk/invoice_analytics_app/internal/core/ports/repositories"
	portssvc "github.com/invodesk/invoice_analytics_app/internal/core/ports/services"
	"github.com/invodesk/invoice_analytics_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rateProvider portsprov.RateProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The rate cache comes first since invoices and analytics depend on it.
	container.ExchangeRate = NewExchangeRateService(
		repos.RateCacheRepo,
		rateProvider,
		cfg.DefaultCurrency,
		WithRateTTL(cfg.ExchangeRateCacheTTL),
	)

	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.CustomerRepo, container.ExchangeRate)
	container.Analytics = NewAnalyticsService(repos.InvoiceRepo, container.ExchangeRate)

	return container
}

// Compile-time checks that the concrete services satisfy their facades.
var (
	_ portssvc.CustomerSvcFacade  = (*CustomerService)(nil)
	_ portssvc.InvoiceSvcFacade   = (*InvoiceService)(nil)
	_ portssvc.RateSvcFacade      = (*ExchangeRateService)(nil)
	_ portssvc.AnalyticsSvcFacade = (*AnalyticsService)(nil)
)
