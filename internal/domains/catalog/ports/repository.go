package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
	"github.com/Apurer/retail-inventory-api/internal/shared/paging"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrDuplicate signals a unique key (sku, email, external id) is already taken.
	ErrDuplicate = errors.New("catalog entry already exists")
)

// ProductQuery selects one page of products.
type ProductQuery struct {
	Page      paging.Page
	SortBy    domain.ProductSortKey
	Direction paging.Direction
}

// CustomerQuery selects one page of customers.
type CustomerQuery struct {
	Page      paging.Page
	SortBy    domain.CustomerSortKey
	Direction paging.Direction
}

// ProductRepository persists catalog products.
type ProductRepository interface {
	Save(ctx context.Context, products ...*domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, query ProductQuery) ([]*domain.Product, error)
	Count(ctx context.Context) (int64, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	ExistingExternalIDs(ctx context.Context, externalIDs []int) (map[int]struct{}, error)
}

// CustomerRepository persists catalog customers.
type CustomerRepository interface {
	Save(ctx context.Context, customers ...*domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, query CustomerQuery) ([]*domain.Customer, error)
	Count(ctx context.Context) (int64, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	ExistingExternalIDs(ctx context.Context, externalIDs []int) (map[int]struct{}, error)
}
