package news

import (
	"net/http"

	"news-api/internal/handler/http/respond"
	newsUC "news-api/internal/usecase/news"
)

// GetHandler serves GET /api/news/{id}.
type GetHandler struct{ Svc *newsUC.Service }

// ServeHTTP 記事取得
//
// @Summary      記事取得
// @Tags         news
// @Produce      json
// @Param        id   path      string  true  "24 hex digit article id"
// @Success      200  {object}  DTO
// @Failure      400  {object}  respond.ErrorBody  "Invalid news ID"
// @Failure      404  {object}  respond.ErrorBody  "News not found"
// @Failure      500  {object}  respond.ErrorBody
// @Router       /api/news/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(n))
}
