// Package logging provides structured logging utilities with context propagation.
//
// Key features:
//   - JSON and text output formats
//   - Request ID propagation
//   - Request-scoped loggers carried in the context
//
// Example usage:
//
//	import "news-api/internal/observability/logging"
//
//	func main() {
//	    logger := logging.New(logging.Options{Level: "info"})
//	    logger.Info("application started", slog.String("version", "1.0"))
//	}
//
//	func handleRequest(ctx context.Context) {
//	    logging.FromContext(ctx).Info("processing request")
//	}
package logging
