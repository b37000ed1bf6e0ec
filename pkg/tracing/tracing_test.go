package tracing

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	return recorder
}

func TestSpanWrapper_RecordsFailure(t *testing.T) {
	RegisterTestingT(t)
	recorder := withRecorder(t)

	err := SpanWrapper(context.Background(), "relay.todo.list", nil, func(ctx context.Context) error {
		Expect(GetTraceID(ctx)).ToNot(BeEmpty())
		Expect(GetSpanID(ctx)).ToNot(BeEmpty())
		return errors.New("HTTP 500: db down")
	})

	Expect(err).To(MatchError("HTTP 500: db down"))

	spans := recorder.Ended()
	Expect(spans).To(HaveLen(1))
	Expect(spans[0].Name()).To(Equal("relay.todo.list"))
	Expect(spans[0].Status().Code).To(Equal(codes.Error))
}

func TestRenderSpanWrapper_Names(t *testing.T) {
	RegisterTestingT(t)
	recorder := withRecorder(t)

	err := RenderSpanWrapper(context.Background(), "index", "s1", func(ctx context.Context) error {
		return nil
	})

	Expect(err).ToNot(HaveOccurred())
	Expect(recorder.Ended()).To(HaveLen(1))
	Expect(recorder.Ended()[0].Name()).To(Equal("view.render.index"))
}

func TestGetTraceID_WithoutSpan(t *testing.T) {
	RegisterTestingT(t)

	Expect(GetTraceID(context.Background())).To(BeEmpty())
	Expect(GetSpanID(context.Background())).To(BeEmpty())
}
