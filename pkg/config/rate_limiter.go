package config

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"todofront/internal/core/telemetry"
	. "todofront/pkg"
	ct "todofront/pkg/context"
)

type RateLimitEndpointConfig struct {
	Requests int
	Window   time.Duration
	KeyFunc  func(*gin.Context) string
}

type RateLimiter struct {
	cache   *cache.Cache
	config  map[string]RateLimitEndpointConfig
	logger  *zap.Logger
	metrics *telemetry.AppMetrics
	mutex   sync.RWMutex
}

type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

// NewRateLimiter limits mutating routes per browser session and everything else per client IP.
// Entries in overrides replace the limits of the same "METHOD /route" key.
func NewRateLimiter(logger *zap.Logger, metrics *telemetry.AppMetrics, overrides map[string]RateLimitConfig) *RateLimiter {
	c := cache.New(5*time.Minute, 10*time.Minute)

	configs := map[string]RateLimitEndpointConfig{
		"POST /todos": {
			Requests: 20,
			Window:   time.Minute,
			KeyFunc:  getSessionKey,
		},
		"POST /api/todos": {
			Requests: 20,
			Window:   time.Minute,
			KeyFunc:  getSessionKey,
		},
		"POST /todos/:id/delete": {
			Requests: 10,
			Window:   time.Minute,
			KeyFunc:  getSessionKey,
		},
		"DELETE /api/todos/:id": {
			Requests: 10,
			Window:   time.Minute,
			KeyFunc:  getSessionKey,
		},
		"default": {
			Requests: 60,
			Window:   time.Minute,
			KeyFunc:  GetClientIP,
		},
	}

	for path, override := range overrides {
		endpoint, ok := configs[path]
		if !ok {
			endpoint = RateLimitEndpointConfig{KeyFunc: GetClientIP}
		}

		endpoint.Requests = override.Requests
		endpoint.Window = override.Window
		configs[path] = endpoint
	}

	return &RateLimiter{
		cache:   c,
		config:  configs,
		logger:  logger,
		metrics: metrics,
	}
}

func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = rl.normalizePath(c.Request.URL.Path)
		}

		methodPath := c.Request.Method + " " + path
		config := rl.configFor(methodPath)

		key := rl.generateKey(c, methodPath, config.KeyFunc)

		rl.logger.Debug("Rate limit check",
			zap.String("methodPath", methodPath),
			zap.String("key", key),
			zap.Int("limit", config.Requests),
			zap.Duration("window", config.Window))

		allowed, remaining, resetTime := rl.checkRateLimit(key, config)

		keyType := "ip"
		if strings.Contains(key, ":session_") {
			keyType = "session"
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(c.Request.Context(), path, keyType)
			}

			rl.logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.String("path", path),
				zap.Int("limit", config.Requests),
				zap.Duration("window", config.Window))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"message":     fmt.Sprintf("Too many requests. Limit: %d per %v", config.Requests, config.Window),
				"retry_after": int(time.Until(resetTime).Seconds()),
			})
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(c.Request.Context(), path, keyType)
		}

		c.Next()
	}
}

func (rl *RateLimiter) configFor(methodPath string) RateLimitEndpointConfig {
	rl.mutex.RLock()
	defer rl.mutex.RUnlock()

	if config, ok := rl.config[methodPath]; ok {
		return config
	}

	return rl.config["default"]
}

func (rl *RateLimiter) checkRateLimit(key string, config RateLimitEndpointConfig) (bool, int, time.Time) {
	now := time.Now()

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if entry, found := rl.cache.Get(key); found {
		rateLimitEntry := entry.(RateLimitEntry)

		if now.After(rateLimitEntry.ResetTime) {
			resetTime := now.Add(config.Window)
			rl.cache.Set(key, RateLimitEntry{Count: 1, ResetTime: resetTime}, config.Window)
			return true, config.Requests - 1, resetTime
		}

		if rateLimitEntry.Count >= config.Requests {
			return false, 0, rateLimitEntry.ResetTime
		}

		rateLimitEntry.Count++
		rl.cache.Set(key, rateLimitEntry, time.Until(rateLimitEntry.ResetTime))

		return true, config.Requests - rateLimitEntry.Count, rateLimitEntry.ResetTime
	}

	resetTime := now.Add(config.Window)
	rl.cache.Set(key, RateLimitEntry{Count: 1, ResetTime: resetTime}, config.Window)

	return true, config.Requests - 1, resetTime
}

// normalizePath maps unrouted todo paths onto their route patterns.
func (rl *RateLimiter) normalizePath(path string) string {
	parts := strings.Split(path, "/")

	switch {
	case len(parts) == 4 && parts[1] == "api" && parts[2] == "todos":
		parts[3] = ":id"
	case len(parts) == 4 && parts[1] == "todos" && parts[3] == "delete":
		parts[2] = ":id"
	default:
		return path
	}

	return strings.Join(parts, "/")
}

func (rl *RateLimiter) generateKey(c *gin.Context, path string, keyFunc func(*gin.Context) string) string {
	return fmt.Sprintf("rate_limit:%s:%s", path, keyFunc(c))
}

// getSessionKey falls back to the client IP while the session is brand new,
// so dropping the cookie does not buy a fresh bucket.
func getSessionKey(c *gin.Context) string {
	if c.GetBool(ct.SessionNewKey) {
		return GetClientIP(c)
	}

	if session, exists := c.Get(ct.SessionIDKey); exists {
		return fmt.Sprintf("session_%v", session)
	}
	return GetClientIP(c)
}

func (rl *RateLimiter) SetConfig(path string, config RateLimitEndpointConfig) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.config[path] = config
}

func (rl *RateLimiter) GetStats() map[string]interface{} {
	rl.mutex.RLock()
	defer rl.mutex.RUnlock()

	return map[string]interface{}{
		"active_entries": rl.cache.ItemCount(),
		"configs":        len(rl.config),
	}
}
