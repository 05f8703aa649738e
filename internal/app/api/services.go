package api

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/Apurer/retail-inventory-api/internal/clients/http/dummyjson"
	catalogexternal "github.com/Apurer/retail-inventory-api/internal/domains/catalog/adapters/external/dummyjson"
	catalogobs "github.com/Apurer/retail-inventory-api/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/retail-inventory-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
	ordersobs "github.com/Apurer/retail-inventory-api/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Apurer/retail-inventory-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/retail-inventory-api/internal/domains/orders/ports"
	usersobs "github.com/Apurer/retail-inventory-api/internal/domains/users/adapters/observability"
	usersapp "github.com/Apurer/retail-inventory-api/internal/domains/users/application"
	usersports "github.com/Apurer/retail-inventory-api/internal/domains/users/ports"
	platformobservability "github.com/Apurer/retail-inventory-api/internal/platform/observability"
)

// Services are the decorated application services of every bounded context.
type Services struct {
	Orders  ordersports.Service
	Catalog catalogports.Service
	Users   usersports.Service
}

// BuildServices wires the application services over stores and wraps them with tracing, metrics and logs.
func BuildServices(cfg Config, stores *Stores, instruments *platformobservability.Instruments) (*Services, error) {
	logger := effectiveLogger(instruments)

	orders := ordersobs.New(
		ordersapp.NewService(stores.Orders, stores.UnitOfWork, stores.Customers, stores.Products),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	catalogOpts := []catalogapp.Option{}
	if cfg.DummyJSONBaseURL != "" {
		client, err := dummyjson.NewClient(cfg.DummyJSONBaseURL)
		if err != nil {
			return nil, err
		}
		catalogOpts = append(catalogOpts, catalogapp.WithExternalCatalog(catalogexternal.NewCatalog(client)))
	}
	catalog := catalogobs.New(
		catalogapp.NewService(stores.Products, stores.Customers, catalogOpts...),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)

	users := usersobs.New(
		usersapp.NewService(stores.Users, stores.Sessions, usersapp.WithSessionTTL(cfg.SessionTTL)),
		usersobs.WithLogger(logger),
		usersobs.WithTracer(instruments.Tracer("internal.users.application")),
		usersobs.WithMeter(instruments.Meter("internal.users.application")),
	)
	return &Services{Orders: orders, Catalog: catalog, Users: users}, nil
}

// Seed creates the default users and random catalog fixtures as configured. Failures are logged, not fatal.
func Seed(ctx context.Context, cfg Config, stores *Stores, services *Services, logger *slog.Logger) {
	if cfg.SeedUsers {
		created, err := services.Users.SeedDefaultUsers(ctx)
		if err != nil {
			logger.Warn("failed to seed default users", slog.String("error", err.Error()))
		} else if created > 0 {
			logger.Info("seeded default users", slog.Int("count", created))
		}
	}
	if cfg.SeedFixtures <= 0 {
		return
	}
	seeder := catalogapp.NewFixtureSeeder(stores.Products, stores.Customers, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	products, err := seeder.SeedProducts(ctx, cfg.SeedFixtures)
	if err != nil {
		logger.Warn("failed to seed product fixtures", slog.String("error", err.Error()))
	}
	customers, err := seeder.SeedCustomers(ctx, cfg.SeedFixtures)
	if err != nil {
		logger.Warn("failed to seed customer fixtures", slog.String("error", err.Error()))
	}
	logger.Info("seeded catalog fixtures", slog.Int("products", products), slog.Int("customers", customers))
}
