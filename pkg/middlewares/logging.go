package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	. "todofront/pkg/config"
	ct "todofront/pkg/context"
)

func LoggingMiddleware(logger *LokiLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		if raw != "" {
			path = path + "?" + raw
		}

		ctx := c.Request.Context()
		current := ct.GetCurrent(ctx)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("request_id", current.RequestID()),
			zap.String("session_id", current.SessionID()),
			zap.String("service", logger.ServiceName),
		}

		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		level := zapcore.InfoLevel
		switch {
		case status >= 500:
			level = zapcore.ErrorLevel
			logger.Logger.Ctx(ctx).Error("HTTP Request", fields...)
		case status >= 400:
			level = zapcore.WarnLevel
			logger.Logger.Ctx(ctx).Warn("HTTP Request", fields...)
		default:
			logger.Logger.Ctx(ctx).Info("HTTP Request", fields...)
		}

		go logger.SendToLoki(ctx, level, "HTTP Request", fields)
	}
}
