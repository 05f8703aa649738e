package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Apurer/retail-inventory-api/internal/domains/orders/application/types"
)

const (
	completeThreshold = 60
	cancelThreshold   = 80
	maxRandomQuantity = 4
)

// GenerateRandomOrders places count single-item orders for random customers and products,
// then completes about 60% and cancels about 20% of them. Failed iterations are recorded
// in the report and never stop the run.
func (s *Service) GenerateRandomOrders(ctx context.Context, count int) (*types.GenerationReport, error) {
	if count < 1 || count > types.MaxGenerationCount {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidInput, types.MaxGenerationCount)
	}
	report := &types.GenerationReport{Requested: count}
	if s.customers == nil || s.products == nil {
		return report, nil
	}
	customerIDs, err := s.customers.ListIDs(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	productIDs, err := s.products.ListIDs(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	if len(customerIDs) == 0 || len(productIDs) == 0 {
		return report, nil
	}

	report.Attempts = make([]types.GenerationAttempt, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		pick := s.nextPick(len(customerIDs), len(productIDs))
		report.Attempts = append(report.Attempts, s.attempt(ctx, customerIDs[pick.customer], productIDs[pick.product], pick))
	}
	return report, nil
}

type generationPick struct {
	customer int
	product  int
	quantity int
	roll     int
}

func (s *Service) nextPick(customers, products int) generationPick {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return generationPick{
		customer: s.rng.IntN(customers),
		product:  s.rng.IntN(products),
		quantity: 1 + s.rng.IntN(maxRandomQuantity-1),
		roll:     1 + s.rng.IntN(100),
	}
}

func (s *Service) attempt(ctx context.Context, customerID, productID uuid.UUID, pick generationPick) types.GenerationAttempt {
	orderID, err := s.CreateOrder(ctx, types.CreateOrderInput{
		CustomerID: customerID,
		Items:      []types.CreateOrderItemInput{{ProductID: productID, Quantity: pick.quantity}},
	})
	if err != nil {
		return types.GenerationAttempt{Outcome: types.OutcomeFailed, Err: err}
	}
	switch {
	case pick.roll <= completeThreshold:
		if err := s.CompleteOrder(ctx, orderID); err != nil {
			return types.GenerationAttempt{OrderID: orderID, Outcome: types.OutcomePending, Err: err}
		}
		return types.GenerationAttempt{OrderID: orderID, Outcome: types.OutcomeCompleted}
	case pick.roll <= cancelThreshold:
		if err := s.CancelOrder(ctx, orderID); err != nil {
			return types.GenerationAttempt{OrderID: orderID, Outcome: types.OutcomePending, Err: err}
		}
		return types.GenerationAttempt{OrderID: orderID, Outcome: types.OutcomeCancelled}
	default:
		return types.GenerationAttempt{OrderID: orderID, Outcome: types.OutcomePending}
	}
}
