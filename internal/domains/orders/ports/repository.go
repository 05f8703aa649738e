package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/retail-inventory-api/internal/domains/orders/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderExists   = errors.New("order already exists")
)

// Repository serves order reads outside of a unit of work.
// Orders are always returned with their items.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, query domain.ListQuery) ([]*domain.Order, error)
	Count(ctx context.Context, status *domain.Status) (int64, error)
	Summary(ctx context.Context) (domain.Summary, error)
}

// IDLister enumerates the identities of a catalog table.
type IDLister interface {
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}
