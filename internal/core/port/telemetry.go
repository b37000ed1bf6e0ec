package port

import (
	"context"
	"time"
)

// Span is the subset of a tracing span the core needs.
type Span interface {
	End()
	SetAttributes(attrs map[string]interface{})
	SetStatus(code string, message string)
	RecordError(err error)
}

// Telemetry lets the core emit traces and metrics without knowing the implementation.
type Telemetry interface {
	StartRelaySpan(ctx context.Context, operation string, attrs map[string]interface{}) (context.Context, Span)
	StartPresenterSpan(ctx context.Context, operation string, session string, attrs map[string]interface{}) (context.Context, Span)

	RecordRelayOperation(ctx context.Context, operation string, duration time.Duration, err error)
	RecordBackendCall(ctx context.Context, method string, path string, statusCode int, duration time.Duration)
	RecordValidationFailure(ctx context.Context, fields []string)
	RecordPresenterOperation(ctx context.Context, operation string, session string, duration time.Duration, err error)
}
