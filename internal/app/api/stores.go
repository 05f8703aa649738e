package api

import (
	"context"
	"log/slog"

	catalogmemory "github.com/Apurer/retail-inventory-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/retail-inventory-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
	ordersmemory "github.com/Apurer/retail-inventory-api/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/Apurer/retail-inventory-api/internal/domains/orders/adapters/persistence/postgres"
	ordersports "github.com/Apurer/retail-inventory-api/internal/domains/orders/ports"
	usersmemory "github.com/Apurer/retail-inventory-api/internal/domains/users/adapters/memory"
	userspostgres "github.com/Apurer/retail-inventory-api/internal/domains/users/adapters/persistence/postgres"
	usersports "github.com/Apurer/retail-inventory-api/internal/domains/users/ports"
	"github.com/Apurer/retail-inventory-api/internal/platform/memstore"
	"github.com/Apurer/retail-inventory-api/internal/platform/metrics"
	platformpostgres "github.com/Apurer/retail-inventory-api/internal/platform/postgres"
)

// Stores holds every repository of the process, all backed by postgres or all by memory.
type Stores struct {
	Products   catalogports.ProductRepository
	Customers  catalogports.CustomerRepository
	LowStock   metrics.LowStockCounter
	Orders     ordersports.Repository
	UnitOfWork ordersports.UnitOfWork
	Users      usersports.Repository
	Sessions   usersports.SessionStore
	// Durable is true when the stores are backed by postgres.
	Durable bool
}

// OpenStores connects to postgres when cfg names a reachable database and falls back to memory otherwise.
func OpenStores(ctx context.Context, cfg Config, logger *slog.Logger) (*Stores, func()) {
	db, cleanup := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return MemoryStores(), cleanup
	}
	products := catalogpostgres.NewProductRepository(db)
	return &Stores{
		Products:   products,
		Customers:  catalogpostgres.NewCustomerRepository(db),
		LowStock:   products,
		Orders:     orderspostgres.NewRepository(db),
		UnitOfWork: orderspostgres.NewUnitOfWork(db),
		Users:      userspostgres.NewRepository(db),
		Sessions:   userspostgres.NewSessionStore(db),
		Durable:    true,
	}, cleanup
}

// MemoryStores shares one in-memory store between the catalog and order adapters.
func MemoryStores() *Stores {
	store := memstore.New()
	products := catalogmemory.NewProductRepository(store)
	return &Stores{
		Products:   products,
		Customers:  catalogmemory.NewCustomerRepository(store),
		LowStock:   products,
		Orders:     ordersmemory.NewRepository(store),
		UnitOfWork: ordersmemory.NewUnitOfWork(store),
		Users:      usersmemory.NewRepository(),
		Sessions:   usersmemory.NewSessionStore(),
	}
}
