package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies spans produced by this service.
const InstrumentationName = "news-api"

// GetTracer returns the tracer for creating spans.
// It resolves the global provider on every call so a provider installed after
// package initialisation is honoured.
func GetTracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}
