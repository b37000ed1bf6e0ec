package http

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"todofront/internal/adapter/backend"
	"todofront/internal/adapter/http/handler"
	"todofront/internal/adapter/http/validation"
	"todofront/internal/adapter/store/memory"
	"todofront/internal/adapter/store/redisstore"
	"todofront/internal/core/port"
	"todofront/internal/core/service"
	"todofront/pkg/config"
)

type Container struct {
	Backend   port.TodoBackend
	ViewStore port.ViewStore

	Relay     port.TodoRelay
	Presenter port.Presenter

	PageHandler   *handler.PageHandler
	TodoHandler   *handler.TodoHandler
	HealthHandler *handler.HealthHandler

	redis *redis.Client
}

func NewContainer(ctx context.Context, cfg *config.AppConfig, probe port.Telemetry, logger *config.LokiLogger) (*Container, error) {
	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.BackendTimeout,
	}, probe, logger)

	if err != nil {
		return nil, err
	}

	container := &Container{Backend: client}

	switch cfg.ViewStore {
	case config.ViewStoreRedis:
		rdb, err := redisstore.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("view store: %w", err)
		}

		container.redis = rdb
		container.ViewStore = redisstore.NewViewStore(rdb, cfg.ViewTTL)
	default:
		container.ViewStore = memory.NewViewStore(cfg.ViewTTL)
	}

	relay := service.NewTodoRelay(client, validation.NewTodoValidator(), probe, logger.Logger)
	presenter := service.NewTodoPresenter(relay, container.ViewStore, probe, logger.Logger)

	container.Relay = relay
	container.Presenter = presenter
	container.PageHandler = handler.NewPageHandler(relay, presenter, logger)
	container.TodoHandler = handler.NewTodoHandler(relay, presenter, logger)
	container.HealthHandler = handler.NewHealthHandler(cfg.ServiceVersion)

	return container, nil
}

func (c *Container) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}

	return nil
}
