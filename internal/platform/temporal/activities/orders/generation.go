package orders

import (
	"context"
	"errors"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/retail-inventory-api/internal/domains/orders/application"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/application/types"
)

// GenerateBatchActivityName places one batch of random orders.
const GenerateBatchActivityName = "orders.activities.GenerateBatch"

// deadlineMargin is kept free before the activity deadline so a stopped batch can still report its tally.
const deadlineMargin = 5 * time.Second

// Generator is the part of the order engine the activities drive.
type Generator interface {
	GenerateRandomOrders(ctx context.Context, count int) (*types.GenerationReport, error)
}

// BatchInput identifies one slice of a generation run.
type BatchInput struct {
	Batch int
	Count int
}

// Activities groups the order generation activities.
type Activities struct {
	generator Generator
}

func NewActivities(generator Generator) *Activities {
	return &Activities{generator: generator}
}

// GenerateBatch runs the generator for input.Count orders and returns the tally.
// Invalid counts fail without retry. Per-order failures are part of the tally, not errors.
// A batch stopped by cancellation or its deadline returns the partial tally without error,
// since its orders are committed and a retry would place the whole batch again.
func (a *Activities) GenerateBatch(ctx context.Context, input BatchInput) (types.GenerationSummary, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.generator == nil {
		logger.Error("order generation activity not initialized", "batch", input.Batch)
		return types.GenerationSummary{}, temporal.NewNonRetryableApplicationError("order generation activity not initialized", "NotInitialized", nil)
	}
	logger.Info("GenerateBatch activity started", "batch", input.Batch, "count", input.Count)
	genCtx, cancel := withDeadlineMargin(ctx, activity.GetInfo(ctx).Deadline)
	defer cancel()
	report, err := a.generator.GenerateRandomOrders(genCtx, input.Count)
	if err != nil && report != nil && isStopped(err) {
		summary := report.Summary()
		logger.Warn("GenerateBatch activity stopped early",
			"batch", input.Batch,
			"created", summary.Created,
			"requested", summary.Requested,
			"error", err,
		)
		return summary, nil
	}
	if err != nil {
		logger.Error("GenerateBatch activity failed", "batch", input.Batch, "error", err)
		if errors.Is(err, ordersapp.ErrInvalidInput) {
			return types.GenerationSummary{}, temporal.NewNonRetryableApplicationError(err.Error(), "InvalidInput", err)
		}
		return types.GenerationSummary{}, err
	}
	summary := report.Summary()
	logger.Info("GenerateBatch activity completed",
		"batch", input.Batch,
		"created", summary.Created,
		"failed", summary.Failed,
	)
	return summary, nil
}

func withDeadlineMargin(ctx context.Context, deadline time.Time) (context.Context, context.CancelFunc) {
	if deadline.IsZero() || time.Until(deadline) <= 2*deadlineMargin {
		return context.WithCancel(ctx)
	}
	return context.WithDeadline(ctx, deadline.Add(-deadlineMargin))
}

func isStopped(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
