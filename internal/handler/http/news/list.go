package news

import (
	"net/http"

	"news-api/internal/handler/http/respond"
	newsUC "news-api/internal/usecase/news"
)

// ListHandler serves GET /api/news.
type ListHandler struct{ Svc *newsUC.Service }

// ServeHTTP 記事一覧取得
// Query parameters: date (ISO 8601, matches the whole UTC day), title (case-insensitive
// substring), sortBy (id|title|description|text|date, default date), orderBy (desc|asc).
//
// @Summary      記事一覧取得
// @Description  Lists articles, optionally filtered by day and title and sorted by one field.
// @Tags         news
// @Produce      json
// @Param        date     query  string  false  "ISO 8601 date; matches the whole UTC day"
// @Param        title    query  string  false  "case-insensitive substring"
// @Param        sortBy   query  string  false  "sort field"  Enums(id, title, description, text, date) default(date)
// @Param        orderBy  query  string  false  "sort order"  Enums(desc, asc) default(desc)
// @Success      200  {array}   DTO
// @Failure      400  {object}  respond.ErrorBody  "Invalid date"
// @Failure      500  {object}  respond.ErrorBody
// @Router       /api/news [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.Svc.List(r.Context(), newsUC.ListParams{
		Date:    q.Get("date"),
		Title:   q.Get("title"),
		SortBy:  q.Get("sortBy"),
		OrderBy: q.Get("orderBy"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(list))
}
