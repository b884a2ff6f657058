package news

import (
	"net/http"

	"news-api/internal/handler/http/respond"
	newsUC "news-api/internal/usecase/news"
)

// ReplaceHandler serves PUT /api/news/{id}. Mount it behind RequireInput.
// A replace without a date keeps the stored date.
type ReplaceHandler struct{ Svc *newsUC.Service }

// ServeHTTP 記事更新
//
// @Summary      記事更新
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "24 hex digit article id"
// @Param        article  body      object  true  "title, description, text and an optional ISO 8601 date"
// @Success      200      {object}  DTO
// @Failure      400      {object}  respond.ErrorBody  "validation messages or Invalid news ID"
// @Failure      404      {object}  respond.ErrorBody  "News not found"
// @Failure      500      {object}  respond.ErrorBody
// @Router       /api/news/{id} [put]
func (h ReplaceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	in, ok := InputFromContext(r.Context())
	if !ok {
		respond.InternalError(w, r, errNoValidatedBody)
		return
	}

	n, err := h.Svc.Replace(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(n))
}

// PatchHandler serves PATCH /api/news/{id}. Mount it behind RequirePatch.
// Only supplied fields change; an empty patch returns the stored article.
type PatchHandler struct{ Svc *newsUC.Service }

// ServeHTTP 記事部分更新
//
// @Summary      記事部分更新
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "24 hex digit article id"
// @Param        article  body      object  true  "any subset of title, description, text and date"
// @Success      200      {object}  DTO
// @Failure      400      {object}  respond.ErrorBody  "validation messages or Invalid news ID"
// @Failure      404      {object}  respond.ErrorBody  "News not found"
// @Failure      500      {object}  respond.ErrorBody
// @Router       /api/news/{id} [patch]
func (h PatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	patch, ok := PatchFromContext(r.Context())
	if !ok {
		respond.InternalError(w, r, errNoValidatedBody)
		return
	}

	n, err := h.Svc.Patch(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(n))
}
