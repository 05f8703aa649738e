package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
	"github.com/Apurer/retail-inventory-api/internal/shared/paging"
)

// ListInput carries raw paging and sorting parameters from callers.
type ListInput struct {
	PageNumber    int
	PageSize      int
	SortBy        string
	SortDirection string
}

// Service exposes catalog use cases to adapters.
type Service interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context, input ListInput) (paging.Result[*domain.Product], error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	ListCustomers(ctx context.Context, input ListInput) (paging.Result[*domain.Customer], error)
	ImportProducts(ctx context.Context) (int, error)
	ImportCustomers(ctx context.Context) (int, error)
}
