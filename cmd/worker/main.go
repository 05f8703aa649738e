package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/retail-inventory-api/internal/app/api"
	platformobservability "github.com/Apurer/retail-inventory-api/internal/platform/observability"
	orderactivities "github.com/Apurer/retail-inventory-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/retail-inventory-api/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "retail-inventory-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, cleanupStores := api.OpenStores(ctx, cfg, logger)
	defer cleanupStores()
	if !stores.Durable {
		logger.Warn("worker runs on in-memory stores; generated orders are not visible to the API")
	}
	services, err := api.BuildServices(cfg, stores, instruments)
	if err != nil {
		logger.Error("failed to build services", slog.String("error", err.Error()))
		os.Exit(1)
	}
	activities := orderactivities.NewActivities(services.Orders)

	temporalClient, err := api.DialTemporal(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.GenerationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.GenerationWorkflow, workflow.RegisterOptions{Name: orderworkflows.GenerationWorkflowName})
	w.RegisterActivityWithOptions(activities.GenerateBatch, activity.RegisterOptions{Name: orderactivities.GenerateBatchActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.GenerationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
