package http

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/gomega"

	"todofront/internal/adapter/store/memory"
	"todofront/internal/core/domain"
	"todofront/internal/core/telemetry"
	"todofront/pkg/config"
)

func TestNewContainer_Wiring(t *testing.T) {
	RegisterTestingT(t)

	cfg := config.GetDefaultConfig()
	cfg.BackendURL = "http://localhost:5291"

	container, err := NewContainer(context.Background(), cfg, telemetry.NewNoOpProbe(), config.NewNopLogger())

	Expect(err).ToNot(HaveOccurred())
	Expect(container.ViewStore).To(BeAssignableToTypeOf(&memory.ViewStore{}))
	Expect(container.PageHandler).ToNot(BeNil())
	Expect(container.TodoHandler).ToNot(BeNil())
	Expect(container.HealthHandler).ToNot(BeNil())
	Expect(container.Close()).To(Succeed())
}

func TestNewContainer_MissingBackendURL(t *testing.T) {
	RegisterTestingT(t)

	_, err := NewContainer(context.Background(), config.GetDefaultConfig(), telemetry.NewNoOpProbe(), config.NewNopLogger())

	var configErr *domain.ConfigurationError
	Expect(errors.As(err, &configErr)).To(BeTrue())
	Expect(configErr.Key).To(Equal("BACKEND_URL"))
}

func TestNewContainer_BadRedisURL(t *testing.T) {
	RegisterTestingT(t)

	cfg := config.GetDefaultConfig()
	cfg.BackendURL = "http://localhost:5291"
	cfg.ViewStore = config.ViewStoreRedis
	cfg.RedisURL = "not-a-url"

	_, err := NewContainer(context.Background(), cfg, telemetry.NewNoOpProbe(), config.NewNopLogger())

	var configErr *domain.ConfigurationError
	Expect(errors.As(err, &configErr)).To(BeTrue())
	Expect(configErr.Key).To(Equal("REDIS_URL"))
}
