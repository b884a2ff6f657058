package news

import (
	"net/http"

	"news-api/internal/handler/http/respond"
	newsUC "news-api/internal/usecase/news"
)

// CreateHandler serves POST /api/news. Mount it behind RequireInput.
type CreateHandler struct{ Svc *newsUC.Service }

// ServeHTTP 記事作成
//
// @Summary      記事作成
// @Description  title, description and text are required. date defaults to now.
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        article  body      object  true  "title, description, text and an optional ISO 8601 date"
// @Success      201      {object}  DTO
// @Failure      400      {object}  respond.ErrorBody  "validation messages"
// @Failure      413      {object}  respond.ErrorBody  "Payload Too Large"
// @Failure      500      {object}  respond.ErrorBody
// @Router       /api/news [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	in, ok := InputFromContext(r.Context())
	if !ok {
		respond.InternalError(w, r, errNoValidatedBody)
		return
	}

	n, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(n))
}
