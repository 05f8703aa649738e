package api

import (
	"errors"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	platformobservability "github.com/Apurer/retail-inventory-api/internal/platform/observability"
)

// ErrTemporalDisabled is returned by DialTemporal when TEMPORAL_DISABLED is set.
var ErrTemporalDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED env")

// DialTemporal connects a traced Temporal client. component names the tracer.
func DialTemporal(cfg Config, instruments *platformobservability.Instruments, component string) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, ErrTemporalDisabled
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(component),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
