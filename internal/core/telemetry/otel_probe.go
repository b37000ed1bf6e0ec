package telemetry

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"todofront/internal/core/port"
)

const tracerName = "todofront"

// OTELProbe implements Telemetry using OpenTelemetry and Prometheus
type OTELProbe struct {
	logger  *otelzap.Logger
	metrics *AppMetrics
}

func NewOTELProbe(logger *otelzap.Logger, metrics *AppMetrics) port.Telemetry {
	return &OTELProbe{
		logger:  logger,
		metrics: metrics,
	}
}

// OTelSpan wraps OpenTelemetry span to implement our generic Span interface
type OTelSpan struct {
	span trace.Span
}

func (s *OTelSpan) End() {
	s.span.End()
}

func (s *OTelSpan) SetAttributes(attrs map[string]interface{}) {
	s.span.SetAttributes(toAttributes(attrs)...)
}

func (s *OTelSpan) SetStatus(code string, message string) {
	var statusCode codes.Code
	switch code {
	case "ok":
		statusCode = codes.Ok
	case "error":
		statusCode = codes.Error
	default:
		statusCode = codes.Unset
	}
	s.span.SetStatus(statusCode, message)
}

func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
}

func toAttributes(attrs map[string]interface{}) []attribute.KeyValue {
	otelAttrs := make([]attribute.KeyValue, 0, len(attrs))

	for key, value := range attrs {
		switch v := value.(type) {
		case string:
			otelAttrs = append(otelAttrs, attribute.String(key, v))
		case int:
			otelAttrs = append(otelAttrs, attribute.Int(key, v))
		case int64:
			otelAttrs = append(otelAttrs, attribute.Int64(key, v))
		case float64:
			otelAttrs = append(otelAttrs, attribute.Float64(key, v))
		case bool:
			otelAttrs = append(otelAttrs, attribute.Bool(key, v))
		default:
			otelAttrs = append(otelAttrs, attribute.String(key, fmt.Sprintf("%v", v)))
		}
	}

	return otelAttrs
}

func (p *OTELProbe) StartRelaySpan(ctx context.Context, operation string, attrs map[string]interface{}) (context.Context, port.Span) {
	standardAttrs := []attribute.KeyValue{
		attribute.String("relay.operation", operation),
		attribute.String("component", "relay"),
	}
	standardAttrs = append(standardAttrs, toAttributes(attrs)...)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "relay.todo."+operation, trace.WithAttributes(standardAttrs...))
	return ctx, &OTelSpan{span: span}
}

func (p *OTELProbe) StartPresenterSpan(ctx context.Context, operation string, session string, attrs map[string]interface{}) (context.Context, port.Span) {
	standardAttrs := []attribute.KeyValue{
		attribute.String("presenter.operation", operation),
		attribute.String("session.id", session),
		attribute.String("component", "presenter"),
	}
	standardAttrs = append(standardAttrs, toAttributes(attrs)...)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "presenter.todo."+operation, trace.WithAttributes(standardAttrs...))
	return ctx, &OTelSpan{span: span}
}

func (p *OTELProbe) RecordRelayOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)

	span.SetAttributes(
		attribute.String("operation", operation),
		attribute.Int64("duration_ns", duration.Nanoseconds()),
		attribute.Bool("has_error", err != nil),
	)

	outcome := "success"

	if err != nil {
		outcome = "error"
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		p.logger.Ctx(ctx).Error("Relay operation failed",
			zap.String("operation", operation),
			zap.Duration("duration", duration),
			zap.Error(err))
	} else {
		span.SetStatus(codes.Ok, "")
	}

	if p.metrics != nil {
		p.metrics.RecordRelayOperation(ctx, operation, outcome, duration)
	}
}

func (p *OTELProbe) RecordBackendCall(ctx context.Context, method string, path string, statusCode int, duration time.Duration) {
	span := trace.SpanFromContext(ctx)

	span.SetAttributes(
		attribute.String("backend.method", method),
		attribute.String("backend.path", path),
		attribute.Int("backend.status_code", statusCode),
	)

	if p.metrics != nil {
		p.metrics.RecordBackendCall(ctx, method, strconv.Itoa(statusCode), duration)
	}

	p.logger.Ctx(ctx).Debug("Backend call completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", statusCode),
		zap.Duration("duration", duration))
}

func (p *OTELProbe) RecordValidationFailure(ctx context.Context, fields []string) {
	for _, field := range fields {
		if p.metrics != nil {
			p.metrics.RecordValidationFailure(ctx, field)
		}
	}

	p.logger.Ctx(ctx).Debug("Todo input rejected", zap.Strings("fields", fields))
}

func (p *OTELProbe) RecordPresenterOperation(ctx context.Context, operation string, session string, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)

	span.SetAttributes(
		attribute.Int64("duration_ns", duration.Nanoseconds()),
		attribute.Bool("has_error", err != nil),
	)

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		p.logger.Ctx(ctx).Warn("Presenter operation ended with error",
			zap.String("operation", operation),
			zap.String("session", session),
			zap.Error(err))
		return
	}

	span.SetStatus(codes.Ok, "")
}
