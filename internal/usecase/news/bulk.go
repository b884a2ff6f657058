package news

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"news-api/internal/domain/entity"
	"news-api/internal/observability/logging"
	"news-api/internal/observability/metrics"
)

// BulkDeleteResult summarises a DeleteMany call.
type BulkDeleteResult struct {
	Requested int
	Deleted   int
	Failed    int
}

// DeleteMany deletes every id concurrently and waits for all deletes to finish.
//
// A malformed id or an id without a matching article counts as a failure; malformed ids
// never reach the repository. If any id failed it returns ErrSomeNewsNotDeleted. A storage
// error is returned as is and takes precedence. The operation is not atomic: deletions that
// succeeded are not rolled back when others fail.
func (s *Service) DeleteMany(ctx context.Context, ids []string) (BulkDeleteResult, error) {
	res := BulkDeleteResult{Requested: len(ids)}
	var deleted, failed atomic.Int64

	// No errgroup context: one failing delete must not cancel the others.
	var g errgroup.Group
	if s.BulkDeleteLimit > 0 {
		g.SetLimit(s.BulkDeleteLimit)
	}
	for _, id := range ids {
		if !entity.IsValidID(id) {
			failed.Add(1)
			continue
		}
		g.Go(func() error {
			ok, err := s.Repo.DeleteByID(ctx, id)
			if err != nil {
				failed.Add(1)
				return fmt.Errorf("delete news %s: %w", id, err)
			}
			if !ok {
				failed.Add(1)
				return nil
			}
			deleted.Add(1)
			return nil
		})
	}
	err := g.Wait()

	res.Deleted = int(deleted.Load())
	res.Failed = int(failed.Load())
	metrics.RecordBulkDelete(res.Requested, res.Failed)
	logging.FromContext(ctx).Info("bulk delete finished",
		slog.Int("requested", res.Requested),
		slog.Int("deleted", res.Deleted),
		slog.Int("failed", res.Failed))

	switch {
	case err != nil:
		metrics.RecordNewsOperation("delete_many", metrics.ResultError)
		return res, fmt.Errorf("delete many news: %w", err)
	case res.Failed > 0:
		metrics.RecordNewsOperation("delete_many", metrics.ResultNotFound)
		return res, ErrSomeNewsNotDeleted
	}
	metrics.RecordNewsOperation("delete_many", metrics.ResultSuccess)
	return res, nil
}
