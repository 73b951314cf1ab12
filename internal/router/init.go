package router

import (
	app "github.com/oksasatya/invoice-dashboard/internal/application"
	"github.com/oksasatya/invoice-dashboard/internal/container"
	"github.com/oksasatya/invoice-dashboard/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/invoice-dashboard/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/invoice-dashboard/internal/interface/http"
	"github.com/oksasatya/invoice-dashboard/internal/router/modules"
)

func buildUserHandler() *handlers.UserHandler {
	cfg := container.GetConfig()
	service := app.NewUserService(
		pginfra.NewUserRepository(container.GetPGPool()),
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
		container.GetRabbitPub(),
		cfg.BcryptCost,
		cfg.SessionTTL,
		cfg.MailSendEnabled,
	)
	return handlers.NewUserHandler(service, container.GetCookies())
}

func buildCustomerService() *app.CustomerService {
	cfg := container.GetConfig()
	return app.NewCustomerService(
		pginfra.NewCustomerRepository(container.GetPGPool()),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetLogger(),
	)
}

func buildInvoiceHandler(customers *app.CustomerService) *handlers.InvoiceHandler {
	cfg := container.GetConfig()
	listingCache := cache.NewListingCache(container.GetRedis(), "invoices:listing", cfg.InvoiceCacheTTL)
	service := app.NewInvoiceService(
		pginfra.NewInvoiceRepository(container.GetPGPool()),
		listingCache,
		container.GetLogger(),
		container.GetES(),
		cfg.ESInvoicesIndex,
	)
	return handlers.NewInvoiceHandler(service, customers)
}

func buildDashboardHandler() *handlers.DashboardHandler {
	pool := container.GetPGPool()
	service := app.NewDashboardService(
		pginfra.NewDashboardRepository(pool),
		pginfra.NewInvoiceRepository(pool),
	)
	return handlers.NewDashboardHandler(service)
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	customers := buildCustomerService()

	r.Add(modules.NewUserModule(buildUserHandler()))
	r.Add(modules.NewInvoiceModule(buildInvoiceHandler(customers)))
	r.Add(modules.NewCustomerModule(handlers.NewCustomerHandler(customers)))
	r.Add(modules.NewDashboardModule(buildDashboardHandler()))
}
