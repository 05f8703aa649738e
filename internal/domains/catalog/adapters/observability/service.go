package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
	"github.com/Apurer/retail-inventory-api/internal/shared/paging"
)

const tracerName = "github.com/Apurer/retail-inventory-api/internal/domains/catalog/adapters/observability/service"

// Service decorates a catalog application port with tracing, logging, and metrics.
type Service struct {
	inner    ports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	imported metric.Int64Counter
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

// WithMeter injects the meter used for the import counter.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m != nil {
			s.imported, _ = m.Int64Counter("catalog.service.imported", metric.WithDescription("Number of catalog rows imported"))
		}
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
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
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "Service.GetProduct", trace.WithAttributes(attribute.String("product.id", id.String())))
	defer span.End()
	product, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to load product", slog.String("product.id", id.String()))
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context, input ports.ListInput) (paging.Result[*domain.Product], error) {
	ctx, span := s.tracer.Start(ctx, "Service.ListProducts", trace.WithAttributes(listAttrs(input)...))
	defer span.End()
	result, err := s.inner.ListProducts(ctx, input)
	if err != nil {
		return paging.Result[*domain.Product]{}, s.fail(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int64("catalog.total", result.TotalCount))
	return result, nil
}

func (s *Service) GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "Service.GetCustomer", trace.WithAttributes(attribute.String("customer.id", id.String())))
	defer span.End()
	customer, err := s.inner.GetCustomer(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to load customer", slog.String("customer.id", id.String()))
	}
	return customer, nil
}

func (s *Service) ListCustomers(ctx context.Context, input ports.ListInput) (paging.Result[*domain.Customer], error) {
	ctx, span := s.tracer.Start(ctx, "Service.ListCustomers", trace.WithAttributes(listAttrs(input)...))
	defer span.End()
	result, err := s.inner.ListCustomers(ctx, input)
	if err != nil {
		return paging.Result[*domain.Customer]{}, s.fail(ctx, span, err, "failed to list customers")
	}
	span.SetAttributes(attribute.Int64("catalog.total", result.TotalCount))
	return result, nil
}

func (s *Service) ImportProducts(ctx context.Context) (int, error) {
	return s.runImport(ctx, "products", s.inner.ImportProducts)
}

func (s *Service) ImportCustomers(ctx context.Context) (int, error) {
	return s.runImport(ctx, "customers", s.inner.ImportCustomers)
}

func (s *Service) runImport(ctx context.Context, kind string, fn func(context.Context) (int, error)) (int, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Import", trace.WithAttributes(attribute.String("catalog.kind", kind)))
	defer span.End()

	s.logger.LogAttrs(ctx, slog.LevelInfo, "importing external catalog", slog.String("kind", kind))
	count, err := fn(ctx)
	if err != nil {
		return 0, s.fail(ctx, span, err, "external catalog import failed", slog.String("kind", kind))
	}
	if s.imported != nil && count > 0 {
		s.imported.Add(ctx, int64(count), metric.WithAttributes(attribute.String("catalog.kind", kind)))
	}
	span.SetAttributes(attribute.Int("catalog.imported", count))
	s.logger.LogAttrs(ctx, slog.LevelInfo, "external catalog imported", slog.String("kind", kind), slog.Int("imported", count))
	return count, nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

func listAttrs(input ports.ListInput) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("page.number", input.PageNumber),
		attribute.Int("page.size", input.PageSize),
		attribute.String("catalog.sort", input.SortBy),
	}
}

var _ ports.Service = (*Service)(nil)
