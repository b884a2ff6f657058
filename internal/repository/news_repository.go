// Package repository defines the storage boundary of the service.
// Adapters for concrete engines live under internal/infra/adapter/persistence.
package repository

import (
	"context"
	"time"

	"news-api/internal/domain/entity"
)

// SortField names a sortable news attribute.
type SortField string

// Sortable fields.
const (
	SortByID          SortField = "id"
	SortByTitle       SortField = "title"
	SortByDescription SortField = "description"
	SortByText        SortField = "text"
	SortByDate        SortField = "date"
)

// IsValid reports whether f is one of the sortable fields.
func (f SortField) IsValid() bool {
	switch f {
	case SortByID, SortByTitle, SortByDescription, SortByText, SortByDate:
		return true
	}
	return false
}

// NewsFilter contains optional list filters. All present filters are combined with AND.
type NewsFilter struct {
	From          *time.Time // Optional: date >= From
	To            *time.Time // Optional: date < To
	TitleContains string     // Optional: case-insensitive substring of title
}

// NewsSort is the ordering applied to a list query.
type NewsSort struct {
	Field      SortField
	Descending bool
}

// NewsQuery is an engine-neutral list query.
type NewsQuery struct {
	Filter NewsFilter
	Sort   NewsSort
}

// NewsRepository persists news articles.
//
// Lookups by id return (nil, nil) when the document does not exist; ids passed in are
// expected to be syntactically valid.
type NewsRepository interface {
	Find(ctx context.Context, q NewsQuery) ([]*entity.News, error)
	FindByID(ctx context.Context, id string) (*entity.News, error)
	// Create assigns the id and stores the article. n.ID is set on success.
	Create(ctx context.Context, n *entity.News) error
	// UpdateByID applies the non-nil fields of patch and returns the updated document.
	UpdateByID(ctx context.Context, id string, patch entity.NewsPatch) (*entity.News, error)
	// DeleteByID reports whether a document was removed.
	DeleteByID(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}
