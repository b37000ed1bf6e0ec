package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	httpadapter "todofront/internal/adapter/http"
	telemetryadapter "todofront/internal/adapter/telemetry"
	. "todofront/pkg/config"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config, err := Load()

	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	logger, err := NewLokiLogger(config.ServiceName, config.LokiURL)

	if err != nil {
		log.Fatal("Failed to initialize Loki logger: ", err)
	}

	defer logger.Sync()

	telemetry, err := telemetryadapter.NewContainer(ctx, telemetryadapter.Config{
		ServiceName:    config.ServiceName,
		ServiceVersion: config.ServiceVersion,
		Environment:    config.Environment,
		MetricsPort:    config.MetricsPort,
		OTLPEndpoint:   config.OTLPEndpoint,
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry: ", err)
	}

	defer telemetry.Shutdown(context.Background())

	telemetry.ServeMetrics(logger)
	telemetry.AppMetrics.StartSystemMetrics(ctx)

	probe := telemetry.NewTelemetryProbe(logger)

	if err := httpadapter.StartServerWithConfig(ctx, telemetry.AppMetrics, probe, logger, config); err != nil {
		logger.Logger.Error("Server stopped", zap.Error(err))
	}
}
