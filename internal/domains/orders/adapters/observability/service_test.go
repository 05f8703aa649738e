package observability

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Apurer/retail-inventory-api/internal/domains/orders/application"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/application/types"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/ports"
	"github.com/Apurer/retail-inventory-api/internal/shared/paging"
)

type stubService struct {
	ports.Service
	createErr error
}

func (s *stubService) CreateOrder(context.Context, types.CreateOrderInput) (uuid.UUID, error) {
	if s.createErr != nil {
		return uuid.Nil, s.createErr
	}
	return uuid.New(), nil
}

func (s *stubService) GetPaged(context.Context, types.ListOrdersInput) (paging.Result[*domain.Order], error) {
	return paging.NewResult[*domain.Order](nil, 0, paging.Normalize(1, 10)), nil
}

func TestCreateOrder_RecordsSpanAndMetrics(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	stub := &stubService{}
	svc := New(stub, WithTracer(tracer), WithMeter(meter))

	_, err := svc.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: uuid.New(),
		Items:      []types.CreateOrderItemInput{{ProductID: uuid.New(), Quantity: 3}},
	})
	require.NoError(t, err)

	stub.createErr = fmt.Errorf("%w: not enough", application.ErrInsufficientStock)
	_, err = svc.CreateOrder(context.Background(), types.CreateOrderInput{CustomerID: uuid.New()})
	require.ErrorIs(t, err, application.ErrInsufficientStock)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "Service.CreateOrder", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	totals := map[string]int64{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				totals[m.Name] += dp.Value
			}
		}
	}
	assert.EqualValues(t, 1, totals["orders.service.placed"])
	assert.EqualValues(t, 3, totals["orders.service.units_reserved"])
	assert.EqualValues(t, 1, totals["orders.service.rejected"])
}

func TestGetPaged_PassesThrough(t *testing.T) {
	svc := New(&stubService{}, WithLogger(nil), WithTracer(nil))
	result, err := svc.GetPaged(context.Background(), types.ListOrdersInput{})
	require.NoError(t, err)
	assert.NotNil(t, result.Items)
}
