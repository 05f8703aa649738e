package ports

import (
	"context"

	"github.com/Apurer/retail-inventory-api/internal/domains/orders/application/types"
)

// GenerationOrchestrator runs bulk random order generation, durably or inline.
type GenerationOrchestrator interface {
	GenerateOrders(ctx context.Context, count int) (types.GenerationSummary, error)
}
