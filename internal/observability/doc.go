// Package observability groups the observability infrastructure of the service:
// structured logging, Prometheus metrics, and OpenTelemetry tracing.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus business and storage metrics
//   - tracing: OpenTelemetry HTTP tracing middleware
package observability
