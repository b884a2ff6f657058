package news

import (
	"time"

	"news-api/internal/domain/entity"
	"news-api/internal/repository"
)

// DefaultSortField is applied when sortBy is absent or not a sortable field.
const DefaultSortField = repository.SortByDate

// ListParams carries the raw list query parameters.
type ListParams struct {
	Date    string // date: any accepted ISO 8601 form; only the UTC calendar day is used
	Title   string // title: case-insensitive substring
	SortBy  string // sortBy: id, title, description, text or date
	OrderBy string // orderBy: "desc" for descending, anything else ascending
}

// BuildQuery translates list parameters into an engine-neutral query.
// It returns ErrInvalidDate when the date parameter cannot be parsed.
func BuildQuery(p ListParams) (repository.NewsQuery, error) {
	var q repository.NewsQuery

	if p.Date != "" {
		d, err := entity.ParseISODate(p.Date)
		if err != nil {
			return repository.NewsQuery{}, ErrInvalidDate
		}
		from, to := dayBounds(d)
		q.Filter.From = &from
		q.Filter.To = &to
	}

	q.Filter.TitleContains = p.Title

	q.Sort.Field = DefaultSortField
	if f := repository.SortField(p.SortBy); f.IsValid() {
		q.Sort.Field = f
	}
	q.Sort.Descending = p.OrderBy == "desc"

	return q, nil
}

// dayBounds returns the start of the UTC day containing t and the start of the next one.
func dayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
