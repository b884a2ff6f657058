package metrics

import "time"

// Operation results.
const (
	ResultSuccess  = "success"
	ResultInvalid  = "invalid"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// RecordNewsOperation records the outcome of a news usecase operation.
func RecordNewsOperation(operation, result string) {
	NewsOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordBulkDelete records the size of a bulk delete and the number of failed ids.
func RecordBulkDelete(requested, failed int) {
	BulkDeleteIDs.Observe(float64(requested))
	if failed > 0 {
		BulkDeleteFailuresTotal.Add(float64(failed))
	}
}

// RecordStorageOperation records the latency of a single repository call.
func RecordStorageOperation(operation string, duration time.Duration) {
	StorageOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateNewsTotal updates the total count of stored news articles.
func UpdateNewsTotal(count int64) {
	NewsTotal.Set(float64(count))
}

// RecordStatsJobRun records a stats job execution.
func RecordStatsJobRun(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	StatsJobRunsTotal.WithLabelValues(status).Inc()
}
