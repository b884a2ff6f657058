// Package worker runs background jobs on a cron schedule.
package worker

import (
	"context"
	"log/slog"
	"time"

	"news-api/internal/handler/http/respond"
	"news-api/internal/observability/metrics"
)

// Counter reports the number of stored articles.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// StatsJob refreshes the news_total gauge.
type StatsJob struct {
	Counter Counter
	Logger  *slog.Logger
	// Timeout bounds a single run. 0 means no timeout.
	Timeout time.Duration
}

// Run counts the stored articles once. Failures are logged and counted, never returned,
// so a broken run does not stop the schedule.
func (j *StatsJob) Run(ctx context.Context) {
	logger := j.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	start := time.Now()
	count, err := j.Counter.Count(ctx)
	if err != nil {
		// 機密情報をマスクしてログ出力
		logger.Error("stats job failed", slog.String("error", respond.SanitizeError(err)))
		metrics.RecordStatsJobRun(false)
		return
	}

	metrics.UpdateNewsTotal(count)
	metrics.RecordStatsJobRun(true)
	logger.Debug("stats job completed",
		slog.Int64("news_total", count),
		slog.Duration("duration", time.Since(start)))
}
