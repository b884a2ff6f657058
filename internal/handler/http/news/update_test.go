package news_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-api/internal/handler/http/news"
)

const replaceBody = `{"title":"Updated Test Title","description":"Updated Test Description","text":"Updated Test Text","date":"2024-03-22T08:30:00.123Z"}`

func TestReplaceHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv, repo := newServer(t, seed()...)

		rr := do(srv, http.MethodPut, "/api/news/"+id1, replaceBody)
		require.Equal(t, http.StatusOK, rr.Code)

		got := decode[news.DTO](t, rr)
		assert.Equal(t, id1, got.ID)
		assert.Equal(t, "Updated Test Title", got.Title)
		assert.Equal(t, "Updated Test Description", got.Description)
		assert.Equal(t, "Updated Test Text", got.Text)
		assert.Equal(t, "2024-03-22T08:30:00.123Z", got.Date)
		assert.Equal(t, "Updated Test Title", repo.Get(id1).Title)
	})

	t.Run("without date keeps stored date", func(t *testing.T) {
		srv, _ := newServer(t, seed()...)

		rr := do(srv, http.MethodPut, "/api/news/"+id1, `{"title":"a","description":"b","text":"c"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "2024-03-25T00:00:00.000Z", decode[news.DTO](t, rr).Date)
	})

	t.Run("invalid id", func(t *testing.T) {
		srv, _ := newServer(t, seed()...)

		rr := do(srv, http.MethodPut, "/api/news/123", replaceBody)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid news ID", decode[errorBody](t, rr).Error)
	})

	t.Run("invalid id wins over schema errors", func(t *testing.T) {
		srv, _ := newServer(t, seed()...)

		rr := do(srv, http.MethodPut, "/api/news/123", `{}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid news ID", decode[errorBody](t, rr).Error)
	})

	t.Run("absent", func(t *testing.T) {
		srv, _ := newServer(t, seed()...)

		rr := do(srv, http.MethodPut, "/api/news/"+absentID, replaceBody)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "News not found", decode[errorBody](t, rr).Error)
	})

	t.Run("schema violation", func(t *testing.T) {
		srv, repo := newServer(t, seed()...)

		rr := do(srv, http.MethodPut, "/api/news/"+id1, `{"title":"only title"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, []string{`"description" is required`, `"text" is required`}, decode[errorsBody](t, rr).Error)
		assert.Equal(t, "Test Title 1", repo.Get(id1).Title)
	})
}

func TestPatchHandler(t *testing.T) {
	t.Run("merges supplied fields", func(t *testing.T) {
		srv, repo := newServer(t, seed()...)

		rr := do(srv, http.MethodPatch, "/api/news/"+id1, `{"title":"Updated Title","description":"Updated Description"}`)
		require.Equal(t, http.StatusOK, rr.Code)

		got := decode[news.DTO](t, rr)
		assert.Equal(t, "Updated Title", got.Title)
		assert.Equal(t, "Updated Description", got.Description)
		assert.Equal(t, "Text 1", got.Text)

		stored := repo.Get(id1)
		assert.Equal(t, "Updated Title", stored.Title)
		assert.Equal(t, "Text 1", stored.Text)
	})

	t.Run("unknown fields tolerated", func(t *testing.T) {
		srv, _ := newServer(t, seed()...)

		rr := do(srv, http.MethodPatch, "/api/news/"+id1, `{"text":"new","views":3}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "new", decode[news.DTO](t, rr).Text)
	})

	t.Run("empty patch returns stored article", func(t *testing.T) {
		srv, _ := newServer(t, seed()...)

		rr := do(srv, http.MethodPatch, "/api/news/"+id1, `{}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Test Title 1", decode[news.DTO](t, rr).Title)
	})

	t.Run("invalid id", func(t *testing.T) {
		srv, _ := newServer(t, seed()...)

		rr := do(srv, http.MethodPatch, "/api/news/"+invalidID, `{}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid news ID", decode[errorBody](t, rr).Error)
	})

	t.Run("absent", func(t *testing.T) {
		srv, _ := newServer(t, seed()...)

		rr := do(srv, http.MethodPatch, "/api/news/"+absentID, `{}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "News not found", decode[errorBody](t, rr).Error)
	})

	t.Run("schema violation", func(t *testing.T) {
		srv, _ := newServer(t, seed()...)

		rr := do(srv, http.MethodPatch, "/api/news/"+id1, `{"title":"","date":"soon"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, []string{
			`"title" is not allowed to be empty`,
			`"date" must be in ISO 8601 date format`,
		}, decode[errorsBody](t, rr).Error)
	})

	t.Run("storage error", func(t *testing.T) {
		srv, repo := newServer(t, seed()...)
		repo.UpdateErr = errors.New("mocked internal server error")

		rr := do(srv, http.MethodPatch, "/api/news/"+id1, `{"title":"x"}`)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Internal Server Error", decode[errorBody](t, rr).Error)
	})

	t.Run("storage error on empty patch", func(t *testing.T) {
		srv, repo := newServer(t, seed()...)
		repo.Err = errors.New("mocked internal server error")

		rr := do(srv, http.MethodPatch, "/api/news/"+id1, `{}`)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Internal Server Error", decode[errorBody](t, rr).Error)
	})
}

func TestWriteRoutes_PayloadTooLarge(t *testing.T) {
	srv, _ := newServer(t, seed()...)
	limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 16)
		srv.ServeHTTP(w, r)
	})

	rr := do(limited, http.MethodPatch, "/api/news/"+id1, `{"title":"a rather long title"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, "Payload Too Large", decode[errorBody](t, rr).Error)
}
