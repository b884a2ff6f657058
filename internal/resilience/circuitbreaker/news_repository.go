package circuitbreaker

import (
	"context"
	"time"

	"news-api/internal/domain/entity"
	"news-api/internal/observability/metrics"
	"news-api/internal/repository"
)

// NewsRepository wraps a repository.NewsRepository with circuit breaker protection.
// Every call is timed into the storage latency histogram. A missing document is a
// regular result and never counts as a failure.
type NewsRepository struct {
	cb      *CircuitBreaker
	next    repository.NewsRepository
	timeout time.Duration
}

var _ repository.NewsRepository = (*NewsRepository)(nil)

// NewNewsRepository wraps next. A positive timeout bounds every storage call.
func NewNewsRepository(next repository.NewsRepository, cfg Config, timeout time.Duration) *NewsRepository {
	return &NewsRepository{cb: New(cfg), next: next, timeout: timeout}
}

// State returns the breaker state name, for health reporting.
func (r *NewsRepository) State() string {
	return r.cb.State().String()
}

// IsOpen returns true if the circuit breaker is in the open state.
func (r *NewsRepository) IsOpen() bool {
	return r.cb.IsOpen()
}

func (r *NewsRepository) run(ctx context.Context, op string, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	start := time.Now()
	defer func() { metrics.RecordStorageOperation(op, time.Since(start)) }()

	return r.cb.Execute(func() (interface{}, error) { return fn(ctx) })
}

func (r *NewsRepository) Find(ctx context.Context, q repository.NewsQuery) ([]*entity.News, error) {
	res, err := r.run(ctx, "find", func(ctx context.Context) (interface{}, error) {
		return r.next.Find(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return res.([]*entity.News), nil
}

func (r *NewsRepository) FindByID(ctx context.Context, id string) (*entity.News, error) {
	res, err := r.run(ctx, "find_by_id", func(ctx context.Context) (interface{}, error) {
		return r.next.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return res.(*entity.News), nil
}

func (r *NewsRepository) Create(ctx context.Context, n *entity.News) error {
	_, err := r.run(ctx, "create", func(ctx context.Context) (interface{}, error) {
		return nil, r.next.Create(ctx, n)
	})
	return err
}

func (r *NewsRepository) UpdateByID(ctx context.Context, id string, patch entity.NewsPatch) (*entity.News, error) {
	res, err := r.run(ctx, "update_by_id", func(ctx context.Context) (interface{}, error) {
		return r.next.UpdateByID(ctx, id, patch)
	})
	if err != nil {
		return nil, err
	}
	return res.(*entity.News), nil
}

func (r *NewsRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	res, err := r.run(ctx, "delete_by_id", func(ctx context.Context) (interface{}, error) {
		return r.next.DeleteByID(ctx, id)
	})
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}

func (r *NewsRepository) Count(ctx context.Context) (int64, error) {
	res, err := r.run(ctx, "count", func(ctx context.Context) (interface{}, error) {
		return r.next.Count(ctx)
	})
	if err != nil {
		return 0, err
	}
	return res.(int64), nil
}

// Ping bypasses the breaker so health checks observe the real storage state.
func (r *NewsRepository) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}
