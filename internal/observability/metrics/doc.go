// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the business and storage metrics of the news service:
//   - News operation outcomes per usecase operation
//   - Bulk delete sizes and failures
//   - Storage call latency
//   - Total stored articles (refreshed by the stats job)
//
// HTTP request metrics live next to the middleware in internal/handler/http.
// All metrics are registered with the Prometheus default registry and exposed via /metrics.
//
// Example usage:
//
//	import "news-api/internal/observability/metrics"
//
//	func deleteNews(ctx context.Context, id string) {
//	    // ... delete ...
//	    metrics.RecordNewsOperation("delete", metrics.ResultSuccess)
//	}
package metrics
