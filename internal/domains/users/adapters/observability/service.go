package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	userdomain "github.com/Apurer/retail-inventory-api/internal/domains/users/domain"
	userports "github.com/Apurer/retail-inventory-api/internal/domains/users/ports"
)

const tracerName = "github.com/Apurer/retail-inventory-api/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
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

func (s *Service) Login(ctx context.Context, email, password string) (*userdomain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Login", trace.WithAttributes(attribute.String("user.email", email)))
	defer span.End()
	session, err := s.inner.Login(ctx, email, password)
	if err != nil {
		s.metrics.recordLogin(ctx, false)
		return nil, s.handleError(ctx, span, err, slog.LevelWarn, "login failed", slog.String("email", email))
	}
	s.metrics.recordLogin(ctx, true)
	span.SetAttributes(attribute.String("user.role", string(session.Role)))
	s.logInfo(ctx, "user logged in", slog.String("email", session.Email), slog.String("role", string(session.Role)))
	return session, nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (userdomain.Principal, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Authenticate")
	defer span.End()
	principal, err := s.inner.Authenticate(ctx, token)
	if err != nil {
		return userdomain.Principal{}, s.handleError(ctx, span, err, slog.LevelDebug, "token rejected")
	}
	span.SetAttributes(attribute.String("user.id", principal.UserID.String()), attribute.String("user.role", string(principal.Role)))
	return principal, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Logout")
	defer span.End()
	if err := s.inner.Logout(ctx, token); err != nil {
		return s.handleError(ctx, span, err, slog.LevelError, "logout failed")
	}
	return nil
}

func (s *Service) SeedDefaultUsers(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.SeedDefaultUsers")
	defer span.End()
	created, err := s.inner.SeedDefaultUsers(ctx)
	if err != nil {
		return created, s.handleError(ctx, span, err, slog.LevelError, "failed to seed default users")
	}
	if created > 0 {
		s.logInfo(ctx, "default users seeded", slog.Int("created", created))
	}
	return created, nil
}

func (s *Service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.PurgeExpiredSessions")
	defer span.End()
	purged, err := s.inner.PurgeExpiredSessions(ctx)
	if err != nil {
		return 0, s.handleError(ctx, span, err, slog.LevelError, "failed to purge sessions")
	}
	span.SetAttributes(attribute.Int64("sessions.purged", purged))
	s.logInfo(ctx, "expired sessions purged", slog.Int64("purged", purged))
	return purged, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, level slog.Level, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, level, msg, attrs...)
	}
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

type serviceMetrics struct {
	logins metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Number of login attempts"))
	return serviceMetrics{logins: logins}
}

func (m serviceMetrics) recordLogin(ctx context.Context, ok bool) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", ok)))
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ userports.Service = (*Service)(nil)
