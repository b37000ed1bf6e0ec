package http

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"todofront/internal/adapter/http/routes"
	"todofront/internal/core/port"
	"todofront/internal/core/telemetry"
	"todofront/pkg/config"
)

// StartServerWithConfig serves until SIGINT/SIGTERM and then drains in-flight requests.
func StartServerWithConfig(ctx context.Context, metrics *telemetry.AppMetrics, probe port.Telemetry, logger *config.LokiLogger, cfg *config.AppConfig) error {
	container, err := NewContainer(ctx, cfg, probe, logger)
	if err != nil {
		return err
	}
	defer container.Close()

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		PageHandler:   container.PageHandler,
		TodoHandler:   container.TodoHandler,
		HealthHandler: container.HealthHandler,
	}, metrics, logger, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.BackendTimeout + 15*time.Second,
	}

	logger.Logger.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("backend_url", cfg.BackendURL),
		zap.String("view_store", cfg.ViewStore),
		zap.Bool("rate_limit_enabled", cfg.RateLimitEnabled),
		zap.Bool("https_enforced", cfg.EnforceHTTPS))

	errCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	case <-ctx.Done():
	}

	logger.Logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
