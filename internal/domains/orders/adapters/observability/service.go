package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/retail-inventory-api/internal/domains/orders/application"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/application/types"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/orders/ports"
	"github.com/Apurer/retail-inventory-api/internal/shared/paging"
)

const tracerName = "github.com/Apurer/retail-inventory-api/internal/domains/orders/adapters/observability/service"

// Service decorates the order engine with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (uuid.UUID, error) {
	attrs := []attribute.KeyValue{
		attribute.String("customer.id", input.CustomerID.String()),
		attribute.Int("order.lines", len(input.Items)),
	}
	ctx, span := s.startSpan(ctx, "Service.CreateOrder", attrs...)
	defer span.End()

	s.logInfo(ctx, "placing order", slog.String("customer.id", input.CustomerID.String()), slog.Int("lines", len(input.Items)))
	id, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx, rejectionReason(err))
		return uuid.Nil, s.handleError(ctx, span, err, "failed to place order", slog.String("customer.id", input.CustomerID.String()))
	}
	units := 0
	for _, item := range input.Items {
		units += item.Quantity
	}
	s.metrics.recordPlaced(ctx, units)
	span.SetAttributes(attribute.String("order.id", id.String()))
	s.logInfo(ctx, "order placed", slog.String("order.id", id.String()), slog.Int("units", units))
	return id, nil
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.GetOrder", attribute.String("order.id", id.String()))
	defer span.End()

	order, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id.String()))
	}
	span.SetAttributes(attribute.String("order.status", order.Status.String()))
	return order, nil
}

func (s *Service) CompleteOrder(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.startSpan(ctx, "Service.CompleteOrder", attribute.String("order.id", id.String()))
	defer span.End()

	s.logInfo(ctx, "completing order", slog.String("order.id", id.String()))
	if err := s.inner.CompleteOrder(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to complete order", slog.String("order.id", id.String()))
	}
	s.metrics.recordTransition(ctx, domain.StatusCompleted)
	s.logInfo(ctx, "order completed", slog.String("order.id", id.String()))
	return nil
}

func (s *Service) CancelOrder(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.startSpan(ctx, "Service.CancelOrder", attribute.String("order.id", id.String()))
	defer span.End()

	s.logInfo(ctx, "cancelling order", slog.String("order.id", id.String()))
	if err := s.inner.CancelOrder(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to cancel order", slog.String("order.id", id.String()))
	}
	s.metrics.recordTransition(ctx, domain.StatusCancelled)
	s.logInfo(ctx, "order cancelled", slog.String("order.id", id.String()))
	return nil
}

func (s *Service) GetSummary(ctx context.Context) (domain.Summary, error) {
	ctx, span := s.startSpan(ctx, "Service.GetSummary")
	defer span.End()

	summary, err := s.inner.GetSummary(ctx)
	if err != nil {
		return domain.Summary{}, s.handleError(ctx, span, err, "failed to summarize orders")
	}
	span.SetAttributes(attribute.Int64("orders.total", summary.TotalOrders))
	return summary, nil
}

func (s *Service) GetPaged(ctx context.Context, input types.ListOrdersInput) (paging.Result[*domain.Order], error) {
	ctx, span := s.startSpan(ctx, "Service.GetPaged",
		attribute.Int("page.number", input.PageNumber),
		attribute.Int("page.size", input.PageSize),
		attribute.String("orders.status", input.Status),
		attribute.String("orders.sort", input.SortBy),
	)
	defer span.End()

	result, err := s.inner.GetPaged(ctx, input)
	if err != nil {
		return paging.Result[*domain.Order]{}, s.handleError(ctx, span, err, "failed to list orders", slog.String("status", input.Status))
	}
	span.SetAttributes(attribute.Int("orders.result.count", len(result.Items)), attribute.Int64("orders.total", result.TotalCount))
	return result, nil
}

func (s *Service) GenerateRandomOrders(ctx context.Context, count int) (*types.GenerationReport, error) {
	ctx, span := s.startSpan(ctx, "Service.GenerateRandomOrders", attribute.Int("generation.requested", count))
	defer span.End()

	s.logInfo(ctx, "generating random orders", slog.Int("count", count))
	report, err := s.inner.GenerateRandomOrders(ctx, count)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to generate random orders", slog.Int("count", count))
	}
	summary := report.Summary()
	s.metrics.recordGenerated(ctx, summary)
	span.SetAttributes(
		attribute.Int("generation.created", summary.Created),
		attribute.Int("generation.failed", summary.Failed),
	)
	s.logInfo(ctx, "random orders generated",
		slog.Int("created", summary.Created),
		slog.Int("completed", summary.Completed),
		slog.Int("cancelled", summary.Cancelled),
		slog.Int("failed", summary.Failed),
	)
	return report, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// logFailure logs business rejections at warn and everything else at error.
func (s *Service) logFailure(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	level := slog.LevelError
	if isExpected(err) {
		level = slog.LevelWarn
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logFailure(ctx, msg, err, attrs...)
	return err
}

func isExpected(err error) bool {
	return errors.Is(err, application.ErrInvalidInput) ||
		errors.Is(err, application.ErrNotFound) ||
		errors.Is(err, application.ErrInsufficientStock) ||
		errors.Is(err, application.ErrInvalidState)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, application.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, application.ErrNotFound):
		return "not_found"
	case errors.Is(err, application.ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersPlaced      metric.Int64Counter
	ordersRejected    metric.Int64Counter
	ordersTransitions metric.Int64Counter
	unitsReserved     metric.Int64Counter
	ordersGenerated   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	rejected, _ := m.Int64Counter("orders.service.rejected", metric.WithDescription("Number of rejected placements"))
	transitions, _ := m.Int64Counter("orders.service.transitions", metric.WithDescription("Number of lifecycle transitions"))
	units, _ := m.Int64Counter("orders.service.units_reserved", metric.WithDescription("Stock units reserved by placed orders"))
	generated, _ := m.Int64Counter("orders.service.generated", metric.WithDescription("Outcomes of random order generation"))
	return serviceMetrics{
		ordersPlaced:      placed,
		ordersRejected:    rejected,
		ordersTransitions: transitions,
		unitsReserved:     units,
		ordersGenerated:   generated,
	}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, units int) {
	addCounter(ctx, m.ordersPlaced, 1)
	addCounter(ctx, m.unitsReserved, int64(units))
}

func (m serviceMetrics) recordRejected(ctx context.Context, reason string) {
	addCounter(ctx, m.ordersRejected, 1, attribute.String("reason", reason))
}

func (m serviceMetrics) recordTransition(ctx context.Context, to domain.Status) {
	addCounter(ctx, m.ordersTransitions, 1, attribute.String("order.status", to.String()))
}

func (m serviceMetrics) recordGenerated(ctx context.Context, summary types.GenerationSummary) {
	addCounter(ctx, m.ordersGenerated, int64(summary.Completed), attribute.String("outcome", string(types.OutcomeCompleted)))
	addCounter(ctx, m.ordersGenerated, int64(summary.Cancelled), attribute.String("outcome", string(types.OutcomeCancelled)))
	addCounter(ctx, m.ordersGenerated, int64(summary.Pending), attribute.String("outcome", string(types.OutcomePending)))
	addCounter(ctx, m.ordersGenerated, int64(summary.Failed), attribute.String("outcome", string(types.OutcomeFailed)))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil || value == 0 {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
