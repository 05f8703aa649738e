package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/retail-inventory-api/internal/domains/orders/application/types"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/ports"
	orderworkflows "github.com/Apurer/retail-inventory-api/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.GenerationOrchestrator = (*TemporalGenerationWorkflows)(nil)
	_ ports.GenerationOrchestrator = (*InlineGenerationWorkflows)(nil)
)

// WorkflowStarter is the subset of the Temporal client used to start generation runs.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
	GetWorkflow(ctx context.Context, workflowID string, runID string) client.WorkflowRun
}

// TemporalGenerationWorkflows runs bulk generation as a Temporal workflow and waits for its result.
type TemporalGenerationWorkflows struct {
	client    WorkflowStarter
	taskQueue string
}

func NewTemporalGenerationWorkflows(c WorkflowStarter) *TemporalGenerationWorkflows {
	return &TemporalGenerationWorkflows{client: c, taskQueue: orderworkflows.GenerationTaskQueue}
}

func (o *TemporalGenerationWorkflows) GenerateOrders(ctx context.Context, count int) (types.GenerationSummary, error) {
	if o == nil || o.client == nil {
		return types.GenerationSummary{}, errors.New("temporal generation workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := fmt.Sprintf("order-generation-%d-%s", count, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.GenerationWorkflowName,
		orderworkflows.GenerationWorkflowInput{Count: count, TraceID: traceComponent},
	)
	if err != nil {
		// A retried request within the same trace joins the run already in flight.
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return types.GenerationSummary{}, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var summary types.GenerationSummary
	if err := run.Get(ctx, &summary); err != nil {
		return types.GenerationSummary{}, err
	}
	return summary, nil
}

// InlineGenerationWorkflows runs generation in process, used when Temporal is disabled or unreachable.
type InlineGenerationWorkflows struct {
	service ports.Service
}

func NewInlineGenerationWorkflows(service ports.Service) *InlineGenerationWorkflows {
	return &InlineGenerationWorkflows{service: service}
}

func (o *InlineGenerationWorkflows) GenerateOrders(ctx context.Context, count int) (types.GenerationSummary, error) {
	if o == nil || o.service == nil {
		return types.GenerationSummary{}, errors.New("inline generation workflows not configured")
	}
	report, err := o.service.GenerateRandomOrders(ctx, count)
	if err != nil {
		return types.GenerationSummary{}, err
	}
	return report.Summary(), nil
}

func workflowTraceComponent(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
