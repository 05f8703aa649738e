package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Apurer/retail-inventory-api/internal/domains/orders/application/types"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/domain"
	"github.com/Apurer/retail-inventory-api/internal/shared/paging"
)

// Service exposes the order engine to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input types.CreateOrderInput) (uuid.UUID, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	CompleteOrder(ctx context.Context, id uuid.UUID) error
	CancelOrder(ctx context.Context, id uuid.UUID) error
	GetSummary(ctx context.Context) (domain.Summary, error)
	GetPaged(ctx context.Context, input types.ListOrdersInput) (paging.Result[*domain.Order], error)
	GenerateRandomOrders(ctx context.Context, count int) (*types.GenerationReport, error)
}
