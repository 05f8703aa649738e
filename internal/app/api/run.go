package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	retailserver "github.com/Apurer/retail-inventory-api/go"
	ordersworkflows "github.com/Apurer/retail-inventory-api/internal/domains/orders/adapters/workflows"
	ordersports "github.com/Apurer/retail-inventory-api/internal/domains/orders/ports"
	"github.com/Apurer/retail-inventory-api/internal/platform/metrics"
	platformobservability "github.com/Apurer/retail-inventory-api/internal/platform/observability"
)

const (
	serviceName     = "retail-inventory-api"
	shutdownTimeout = 10 * time.Second
)

// Run boots the retail inventory HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, cleanupStores := OpenStores(ctx, cfg, logger)
	defer cleanupStores()
	services, err := BuildServices(cfg, stores, instruments)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}
	Seed(ctx, cfg, stores, services, logger)

	var generation ordersports.GenerationOrchestrator = ordersworkflows.NewInlineGenerationWorkflows(services.Orders)
	if temporalClient, err := DialTemporal(cfg, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, generating orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		generation = ordersworkflows.NewTemporalGenerationWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewInventoryCollector(stores.Orders, stores.LowStock,
		metrics.WithLowStockThreshold(cfg.LowStockThreshold),
		metrics.WithLogger(logger),
	)
	if err := collector.Register(registry); err != nil {
		return fmt.Errorf("failed to register inventory metrics: %w", err)
	}

	handlers := retailserver.ApiHandleFunctions{
		AuthAPI:       retailserver.NewAuthAPI(services.Users),
		AdminAPI:      retailserver.NewAdminAPI(),
		CatalogAPI:    retailserver.NewCatalogAPI(services.Catalog),
		OrdersAPI:     retailserver.NewOrdersAPI(services.Orders, generation),
		Metrics:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Authenticator: services.Users,
	}
	router := retailserver.NewRouter(handlers, otelgin.Middleware(serviceName))

	server := &http.Server{Addr: cfg.Addr(), Handler: router, ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("retail inventory API listening", slog.String("addr", server.Addr), slog.Bool("postgres", stores.Durable))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("retail inventory API exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down retail inventory API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
