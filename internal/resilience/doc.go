// Package resilience provides fault tolerance for storage access.
//
// The circuitbreaker subpackage wraps repository.NewsRepository with a
// github.com/sony/gobreaker circuit breaker so a failing database is not
// hammered by every incoming request. Calls are never retried.
//
// Usage Example:
//
//	repo = circuitbreaker.NewNewsRepository(repo, circuitbreaker.StorageConfig(), 0)
//	if repo.IsOpen() {
//	    // report degraded health
//	}
package resilience
