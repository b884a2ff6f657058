// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware extracts W3C trace context from incoming requests, starts a server
// span per request and returns the trace id in the X-Trace-Id response header.
// Setup installs an SDK tracer provider and the W3C propagators; the middleware uses
// whatever provider is installed globally.
//
// Example usage:
//
//	handler := tracing.Middleware(mux)
//
//	func findNews(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "news.find")
//	    defer span.End()
//	}
package tracing
