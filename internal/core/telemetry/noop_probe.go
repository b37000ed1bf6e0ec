package telemetry

import (
	"context"
	"time"

	"todofront/internal/core/port"
)

// NoOpProbe implements Telemetry with no operations - useful for testing or when telemetry is disabled
type NoOpProbe struct{}

func NewNoOpProbe() port.Telemetry {
	return &NoOpProbe{}
}

// NoOpSpan implements the Span interface with no operations
type NoOpSpan struct{}

func (s *NoOpSpan) End()                                       {}
func (s *NoOpSpan) SetAttributes(attrs map[string]interface{}) {}
func (s *NoOpSpan) SetStatus(code string, message string)      {}
func (s *NoOpSpan) RecordError(err error)                      {}

func (p *NoOpProbe) StartRelaySpan(ctx context.Context, operation string, attrs map[string]interface{}) (context.Context, port.Span) {
	return ctx, &NoOpSpan{}
}

func (p *NoOpProbe) StartPresenterSpan(ctx context.Context, operation string, session string, attrs map[string]interface{}) (context.Context, port.Span) {
	return ctx, &NoOpSpan{}
}

func (p *NoOpProbe) RecordRelayOperation(ctx context.Context, operation string, duration time.Duration, err error) {
}

func (p *NoOpProbe) RecordBackendCall(ctx context.Context, method string, path string, statusCode int, duration time.Duration) {
}

func (p *NoOpProbe) RecordValidationFailure(ctx context.Context, fields []string) {
}

func (p *NoOpProbe) RecordPresenterOperation(ctx context.Context, operation string, session string, duration time.Duration, err error) {
}

// TelemetryOperation measures the duration of one relay operation
type TelemetryOperation struct {
	probe     port.Telemetry
	ctx       context.Context
	startTime time.Time
	operation string
}

func StartOperation(probe port.Telemetry, ctx context.Context, operation string) *TelemetryOperation {
	return &TelemetryOperation{
		probe:     probe,
		ctx:       ctx,
		startTime: time.Now(),
		operation: operation,
	}
}

func (op *TelemetryOperation) End(err error) {
	if op.probe != nil {
		op.probe.RecordRelayOperation(op.ctx, op.operation, time.Since(op.startTime), err)
	}
}
