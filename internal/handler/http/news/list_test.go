package news_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-api/internal/domain/entity"
	"news-api/internal/handler/http/news"
)

func TestListHandler(t *testing.T) {
	srv, _ := newServer(t, seed()...)

	tests := []struct {
		name       string
		target     string
		wantTitles []string
	}{
		{name: "default sort by date ascending", target: "/api/news", wantTitles: []string{"Test Title 2", "Test Title 1"}},
		{name: "trailing slash", target: "/api/news/", wantTitles: []string{"Test Title 2", "Test Title 1"}},
		{name: "sort by title descending", target: "/api/news?sortBy=title&orderBy=desc", wantTitles: []string{"Test Title 2", "Test Title 1"}},
		{name: "sort by title ascending", target: "/api/news?sortBy=title&orderBy=asc", wantTitles: []string{"Test Title 1", "Test Title 2"}},
		{name: "unknown sort field falls back to date", target: "/api/news?sortBy=views", wantTitles: []string{"Test Title 2", "Test Title 1"}},
		{name: "order other than desc is ascending", target: "/api/news?sortBy=title&orderBy=DESC", wantTitles: []string{"Test Title 1", "Test Title 2"}},
		{name: "date filter", target: "/api/news?date=2024-03-20", wantTitles: []string{"Test Title 2"}},
		{name: "date filter ignores time of day", target: "/api/news?date=2024-03-25T18:30:00Z", wantTitles: []string{"Test Title 1"}},
		{name: "title filter is case-insensitive", target: "/api/news?title=title%201", wantTitles: []string{"Test Title 1"}},
		{name: "filters combine with AND", target: "/api/news?date=2024-03-20&title=Title%201", wantTitles: []string{}},
		{name: "title regex metacharacters are literal", target: "/api/news?title=.*", wantTitles: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(srv, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rr.Code)

			got := decode[[]news.DTO](t, rr)
			titles := make([]string, 0, len(got))
			for _, n := range got {
				titles = append(titles, n.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestListHandler_EmptyIsArray(t *testing.T) {
	srv, _ := newServer(t)

	rr := do(srv, http.MethodGet, "/api/news", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestListHandler_Shape(t *testing.T) {
	srv, _ := newServer(t, &entity.News{
		ID: id1, Title: "t", Description: "d", Text: "x",
		Date: time.Date(2024, 3, 25, 10, 30, 15, 123000000, time.UTC),
	})

	rr := do(srv, http.MethodGet, "/api/news", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t,
		`[{"_id":"65fb5716a99861ca125601ec","title":"t","description":"d","text":"x","date":"2024-03-25T10:30:15.123Z"}]`,
		rr.Body.String())
}

func TestListHandler_InvalidDate(t *testing.T) {
	srv, _ := newServer(t, seed()...)

	rr := do(srv, http.MethodGet, "/api/news?date=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid date", decode[errorBody](t, rr).Error)
}

func TestListHandler_StorageError(t *testing.T) {
	srv, repo := newServer(t, seed()...)
	repo.Err = errors.New("dial tcp mongodb://admin:hunter2@db:27017: connection refused")

	rr := do(srv, http.MethodGet, "/api/news", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal Server Error", decode[errorBody](t, rr).Error)
	assert.NotContains(t, rr.Body.String(), "hunter2")
}
