package news_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"news-api/internal/domain/entity"
	"news-api/internal/handler/http/news"
	"news-api/internal/repository/repositorytest"
	newsUC "news-api/internal/usecase/news"
)

/* ───────── ヘルパ ───────── */

const (
	id1       = "65fb5716a99861ca125601ec"
	id2       = "65fb5c6c3565aa4e7c69e1d6"
	absentID  = "65fb5716e99861ca125601ec"
	invalidID = "invalidId"
)

var fixedNow = time.Date(2024, 3, 25, 12, 0, 0, 0, time.UTC)

func seed() []*entity.News {
	return []*entity.News{
		{ID: id1, Title: "Test Title 1", Description: "Description 1", Text: "Text 1", Date: time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)},
		{ID: id2, Title: "Test Title 2", Description: "Description 2", Text: "Text 2", Date: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
	}
}

func newServer(t *testing.T, items ...*entity.News) (http.Handler, *repositorytest.Fake) {
	t.Helper()
	repo := repositorytest.NewFake(items...)
	svc := &newsUC.Service{Repo: repo, Now: func() time.Time { return fixedNow }}
	mux := http.NewServeMux()
	news.Register(mux, svc)
	return mux, repo
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

type errorBody struct {
	Error string `json:"error"`
}

type errorsBody struct {
	Error []string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}
