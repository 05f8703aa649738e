package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/retail-inventory-api/internal/domains/orders/application/types"
	"github.com/Apurer/retail-inventory-api/internal/platform/temporal/sequences"
)

const (
	// GenerationWorkflowName is the registered name of GenerationWorkflow.
	GenerationWorkflowName = "orders.workflows.Generation"
	// GenerationTaskQueue is consumed by the worker running order generation.
	GenerationTaskQueue = "ORDER_GENERATION"
)

// GenerationWorkflowInput requests count random orders.
type GenerationWorkflowInput struct {
	Count   int
	TraceID string
}

// GenerationWorkflow places random orders in batches and returns the merged tally.
func GenerationWorkflow(ctx workflow.Context, input GenerationWorkflowInput) (types.GenerationSummary, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("GenerationWorkflow started", withTraceID(input.TraceID, "count", input.Count)...)
	summary, err := sequences.RunOrderGenerationSequence(ctx, input.Count)
	if err != nil {
		logger.Error("GenerationWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return summary, err
	}
	logger.Info("GenerationWorkflow completed", withTraceID(input.TraceID, "created", summary.Created, "failed", summary.Failed)...)
	return summary, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
