package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/retail-inventory-api/internal/domains/orders/application/types"
	orderactivities "github.com/Apurer/retail-inventory-api/internal/platform/temporal/activities/orders"
)

// GenerationBatchSize is the most orders a single activity places.
const GenerationBatchSize = 100

// SplitBatches divides count into batches of at most GenerationBatchSize.
func SplitBatches(count int) []int {
	var batches []int
	for remaining := count; remaining > 0; remaining -= GenerationBatchSize {
		batches = append(batches, min(remaining, GenerationBatchSize))
	}
	return batches
}

// RunOrderGenerationSequence executes the generation batches one after another and merges their tallies.
// A failed batch stops the run and returns the tally of the batches that finished.
func RunOrderGenerationSequence(ctx workflow.Context, count int) (types.GenerationSummary, error) {
	logger := workflow.GetLogger(ctx)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	total := types.GenerationSummary{}
	batches := SplitBatches(count)
	logger.Info("order generation sequence started", "count", count, "batches", len(batches))
	for i, size := range batches {
		var summary types.GenerationSummary
		input := orderactivities.BatchInput{Batch: i + 1, Count: size}
		if err := workflow.ExecuteActivity(ctx, orderactivities.GenerateBatchActivityName, input).Get(ctx, &summary); err != nil {
			logger.Error("order generation sequence failed", "batch", i+1, "error", err)
			return total, err
		}
		total = total.Merge(summary)
	}
	logger.Info("order generation sequence completed", "created", total.Created, "failed", total.Failed)
	return total, nil
}
