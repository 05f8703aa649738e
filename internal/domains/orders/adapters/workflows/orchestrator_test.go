package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/retail-inventory-api/internal/domains/orders/application/types"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/ports"
	orderworkflows "github.com/Apurer/retail-inventory-api/internal/platform/temporal/workflows/orders"
)

type fakeRun struct {
	client.WorkflowRun
	summary types.GenerationSummary
}

func (r fakeRun) Get(_ context.Context, valuePtr interface{}) error {
	*(valuePtr.(*types.GenerationSummary)) = r.summary
	return nil
}

type fakeStarter struct {
	options  client.StartWorkflowOptions
	workflow interface{}
	args     []interface{}
	run      fakeRun
	startErr error
	joined   []string
}

func (s *fakeStarter) ExecuteWorkflow(_ context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error) {
	s.options = options
	s.workflow = workflow
	s.args = args
	if s.startErr != nil {
		return nil, s.startErr
	}
	return s.run, nil
}

func (s *fakeStarter) GetWorkflow(_ context.Context, workflowID string, runID string) client.WorkflowRun {
	s.joined = append(s.joined, workflowID, runID)
	return s.run
}

func TestTemporalGenerationStartsNamedWorkflow(t *testing.T) {
	starter := &fakeStarter{run: fakeRun{summary: types.GenerationSummary{Requested: 3, Created: 3, Pending: 3}}}
	orchestrator := NewTemporalGenerationWorkflows(starter)

	summary, err := orchestrator.GenerateOrders(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Created)
	assert.Equal(t, orderworkflows.GenerationTaskQueue, starter.options.TaskQueue)
	assert.Contains(t, starter.options.ID, "order-generation-3-")
	assert.Equal(t, orderworkflows.GenerationWorkflowName, starter.workflow)
	require.Len(t, starter.args, 1)
	assert.Equal(t, 3, starter.args[0].(orderworkflows.GenerationWorkflowInput).Count)
}

func TestTemporalGenerationJoinsRunningWorkflow(t *testing.T) {
	starter := &fakeStarter{
		run:      fakeRun{summary: types.GenerationSummary{Requested: 2, Created: 2, Completed: 2}},
		startErr: serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "", "run-7"),
	}
	orchestrator := NewTemporalGenerationWorkflows(starter)

	summary, err := orchestrator.GenerateOrders(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Completed)
	require.Len(t, starter.joined, 2)
	assert.Equal(t, starter.options.ID, starter.joined[0])
	assert.Equal(t, "run-7", starter.joined[1])
}

type fakeService struct {
	ports.Service
	report *types.GenerationReport
}

func (s fakeService) GenerateRandomOrders(context.Context, int) (*types.GenerationReport, error) {
	return s.report, nil
}

func TestInlineGenerationSummarizesReport(t *testing.T) {
	report := &types.GenerationReport{Requested: 2, Attempts: []types.GenerationAttempt{
		{Outcome: types.OutcomeCancelled},
		{Outcome: types.OutcomeFailed},
	}}
	summary, err := NewInlineGenerationWorkflows(fakeService{report: report}).GenerateOrders(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, types.GenerationSummary{Requested: 2, Created: 1, Cancelled: 1, Failed: 1}, summary)
}

func TestUnconfiguredOrchestratorsFail(t *testing.T) {
	_, err := (&TemporalGenerationWorkflows{}).GenerateOrders(context.Background(), 1)
	assert.Error(t, err)
	_, err = (&InlineGenerationWorkflows{}).GenerateOrders(context.Background(), 1)
	assert.Error(t, err)
}
