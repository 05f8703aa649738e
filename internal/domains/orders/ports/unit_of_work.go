package ports

import (
	"context"

	"github.com/google/uuid"

	catalogports "github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/domain"
)

// UnitOfWork runs fn as one atomic transaction. It commits when fn returns nil and
// rolls back when fn returns an error or panics.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes the stores bound to a single unit of work.
type Tx interface {
	Customers() catalogports.CustomerLookup
	Stock() catalogports.StockLedger
	Orders() OrderWriter
}

// OrderWriter mutates orders inside a unit of work.
type OrderWriter interface {
	Add(ctx context.Context, order *domain.Order) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	UpdateStatus(ctx context.Context, order *domain.Order) error
}
