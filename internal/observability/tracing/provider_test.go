package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetup(t *testing.T) {
	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})

	exporter := tracetest.NewInMemoryExporter()
	shutdown := Setup(sdktrace.WithSyncer(exporter))

	_, span := GetTracer().Start(context.Background(), "op")
	assert.True(t, span.SpanContext().HasTraceID())
	span.End()

	require.Len(t, exporter.GetSpans(), 1)
	assert.Equal(t, "op", exporter.GetSpans()[0].Name)
	assert.ElementsMatch(t, []string{"traceparent", "tracestate", "baggage"}, otel.GetTextMapPropagator().Fields())

	require.NoError(t, shutdown(context.Background()))
}
