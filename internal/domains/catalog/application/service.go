package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
	"github.com/Apurer/retail-inventory-api/internal/shared/paging"
)

// Service serves catalog reads and imports from the external catalog.
type Service struct {
	products  ports.ProductRepository
	customers ports.CustomerRepository
	external  ports.ExternalCatalog
	newID     func() uuid.UUID
}

type Option func(*Service)

// WithExternalCatalog enables ImportProducts and ImportCustomers.
func WithExternalCatalog(external ports.ExternalCatalog) Option {
	return func(s *Service) {
		s.external = external
	}
}

// WithIDGenerator overrides identity generation for imported rows.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func NewService(products ports.ProductRepository, customers ports.CustomerRepository, opts ...Option) *Service {
	s := &Service{products: products, customers: customers, newID: uuid.New}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context, input ports.ListInput) (paging.Result[*domain.Product], error) {
	page := paging.Normalize(input.PageNumber, input.PageSize)
	total, err := s.products.Count(ctx)
	if err != nil {
		return paging.Result[*domain.Product]{}, mapError(err)
	}
	products, err := s.products.List(ctx, ports.ProductQuery{
		Page:      page,
		SortBy:    domain.ParseProductSortKey(input.SortBy),
		Direction: paging.ParseDirection(input.SortDirection),
	})
	if err != nil {
		return paging.Result[*domain.Product]{}, mapError(err)
	}
	return paging.NewResult(products, total, page), nil
}

func (s *Service) GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return customer, nil
}

func (s *Service) ListCustomers(ctx context.Context, input ports.ListInput) (paging.Result[*domain.Customer], error) {
	page := paging.Normalize(input.PageNumber, input.PageSize)
	total, err := s.customers.Count(ctx)
	if err != nil {
		return paging.Result[*domain.Customer]{}, mapError(err)
	}
	customers, err := s.customers.List(ctx, ports.CustomerQuery{
		Page:      page,
		SortBy:    domain.ParseCustomerSortKey(input.SortBy),
		Direction: paging.ParseDirection(input.SortDirection),
	})
	if err != nil {
		return paging.Result[*domain.Customer]{}, mapError(err)
	}
	return paging.NewResult(customers, total, page), nil
}

var _ ports.Service = (*Service)(nil)
