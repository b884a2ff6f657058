package news

import (
	"net/http"

	newsUC "news-api/internal/usecase/news"
)

// Register registers all news routes with the given mux.
// Collection routes also answer with a trailing slash.
func Register(mux *http.ServeMux, svc *newsUC.Service) {
	list := ListHandler{svc}
	create := RequireInput(CreateHandler{svc})
	deleteMany := DeleteManyHandler{svc}

	mux.Handle("GET /api/news", list)
	mux.Handle("GET /api/news/{$}", list)
	mux.Handle("POST /api/news", create)
	mux.Handle("POST /api/news/{$}", create)
	mux.Handle("DELETE /api/news", deleteMany)
	mux.Handle("DELETE /api/news/{$}", deleteMany)

	mux.Handle("GET /api/news/{id}", GetHandler{svc})
	mux.Handle("PUT /api/news/{id}", RequireInput(ReplaceHandler{svc}))
	mux.Handle("PATCH /api/news/{id}", RequirePatch(PatchHandler{svc}))
	mux.Handle("DELETE /api/news/{id}", DeleteHandler{svc})
}
