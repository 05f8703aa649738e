package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
)

// CustomerLookup resolves customers inside a unit of work.
type CustomerLookup interface {
	GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
}

// StockLedger reads and mutates product stock inside a unit of work.
// GetForUpdate must hold the product row until the unit of work ends.
// Deduct fails with domain.ErrInsufficientStock rather than driving stock negative.
type StockLedger interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Deduct(ctx context.Context, id uuid.UUID, quantity int) error
	Restore(ctx context.Context, id uuid.UUID, quantity int) error
}
