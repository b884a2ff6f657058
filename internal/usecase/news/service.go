package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	"news-api/internal/domain/entity"
	"news-api/internal/observability/metrics"
	"news-api/internal/repository"
)

// Service provides news management use cases.
// It re-checks typed inputs, resolves ids and delegates persistence to the repository.
type Service struct {
	Repo repository.NewsRepository

	// BulkDeleteLimit caps concurrent deletes in DeleteMany. 0 means unbounded.
	BulkDeleteLimit int

	// Now returns the creation time for articles without a date. Defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List returns the articles matching the list parameters, ordered as requested.
// The result is never nil.
func (s *Service) List(ctx context.Context, params ListParams) ([]*entity.News, error) {
	q, err := BuildQuery(params)
	if err != nil {
		metrics.RecordNewsOperation("list", metrics.ResultInvalid)
		return nil, err
	}

	items, err := s.Repo.Find(ctx, q)
	if err != nil {
		metrics.RecordNewsOperation("list", metrics.ResultError)
		return nil, fmt.Errorf("list news: %w", err)
	}
	if items == nil {
		items = []*entity.News{}
	}
	metrics.RecordNewsOperation("list", metrics.ResultSuccess)
	return items, nil
}

// Get retrieves a single article by its id.
// Returns ErrInvalidNewsID if the id is malformed and ErrNewsNotFound if it does not exist.
func (s *Service) Get(ctx context.Context, id string) (*entity.News, error) {
	if !entity.IsValidID(id) {
		metrics.RecordNewsOperation("get", metrics.ResultInvalid)
		return nil, ErrInvalidNewsID
	}

	n, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		metrics.RecordNewsOperation("get", metrics.ResultError)
		return nil, fmt.Errorf("get news: %w", err)
	}
	if n == nil {
		metrics.RecordNewsOperation("get", metrics.ResultNotFound)
		return nil, ErrNewsNotFound
	}
	metrics.RecordNewsOperation("get", metrics.ResultSuccess)
	return n, nil
}

// Create stores a new article. When in.Date is nil the current time is used.
func (s *Service) Create(ctx context.Context, in entity.NewsInput) (*entity.News, error) {
	if err := in.Validate(); err != nil {
		metrics.RecordNewsOperation("create", metrics.ResultInvalid)
		return nil, err
	}

	date := s.now()
	if in.Date != nil {
		date = *in.Date
	}
	n := &entity.News{
		Title:       in.Title,
		Description: in.Description,
		Text:        in.Text,
		Date:        entity.StorageTime(date),
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		metrics.RecordNewsOperation("create", metrics.ResultError)
		return nil, fmt.Errorf("create news: %w", err)
	}
	metrics.RecordNewsOperation("create", metrics.ResultSuccess)
	return n, nil
}

// Replace overwrites title, description and text of an existing article.
// The stored date is kept unless in.Date is set.
func (s *Service) Replace(ctx context.Context, id string, in entity.NewsInput) (*entity.News, error) {
	if !entity.IsValidID(id) {
		metrics.RecordNewsOperation("replace", metrics.ResultInvalid)
		return nil, ErrInvalidNewsID
	}
	if err := in.Validate(); err != nil {
		metrics.RecordNewsOperation("replace", metrics.ResultInvalid)
		return nil, err
	}
	return s.update(ctx, "replace", id, in.Patch())
}

// Patch applies the supplied fields to an existing article and returns the merged result.
// An empty patch returns the stored article unchanged.
func (s *Service) Patch(ctx context.Context, id string, patch entity.NewsPatch) (*entity.News, error) {
	if !entity.IsValidID(id) {
		metrics.RecordNewsOperation("patch", metrics.ResultInvalid)
		return nil, ErrInvalidNewsID
	}
	if err := patch.Validate(); err != nil {
		metrics.RecordNewsOperation("patch", metrics.ResultInvalid)
		return nil, err
	}
	if patch.IsEmpty() {
		n, err := s.Repo.FindByID(ctx, id)
		return s.finishUpdate("patch", n, err)
	}
	return s.update(ctx, "patch", id, patch)
}

func (s *Service) update(ctx context.Context, op, id string, patch entity.NewsPatch) (*entity.News, error) {
	if patch.Date != nil {
		d := entity.StorageTime(*patch.Date)
		patch.Date = &d
	}
	n, err := s.Repo.UpdateByID(ctx, id, patch)
	return s.finishUpdate(op, n, err)
}

func (s *Service) finishUpdate(op string, n *entity.News, err error) (*entity.News, error) {
	if err != nil {
		metrics.RecordNewsOperation(op, metrics.ResultError)
		return nil, fmt.Errorf("%s news: %w", op, err)
	}
	if n == nil {
		metrics.RecordNewsOperation(op, metrics.ResultNotFound)
		return nil, ErrNewsNotFound
	}
	metrics.RecordNewsOperation(op, metrics.ResultSuccess)
	return n, nil
}

// Delete removes a single article.
// Returns ErrInvalidNewsID for a malformed id and ErrNewsNotFound if nothing was removed.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !entity.IsValidID(id) {
		metrics.RecordNewsOperation("delete", metrics.ResultInvalid)
		return ErrInvalidNewsID
	}
	deleted, err := s.Repo.DeleteByID(ctx, id)
	if err != nil {
		metrics.RecordNewsOperation("delete", metrics.ResultError)
		return fmt.Errorf("delete news: %w", err)
	}
	if !deleted {
		metrics.RecordNewsOperation("delete", metrics.ResultNotFound)
		return ErrNewsNotFound
	}
	metrics.RecordNewsOperation("delete", metrics.ResultSuccess)
	return nil
}

// Count returns the number of stored articles.
func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count news: %w", err)
	}
	return n, nil
}

// IsClientError reports whether err is caused by the request rather than the storage.
func IsClientError(err error) bool {
	var verr *entity.ValidationErrors
	return errors.Is(err, ErrInvalidNewsID) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.As(err, &verr)
}
