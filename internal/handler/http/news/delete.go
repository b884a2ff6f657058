package news

import (
	"encoding/json"
	"errors"
	"net/http"

	"news-api/internal/domain/entity"
	"news-api/internal/handler/http/respond"
	newsUC "news-api/internal/usecase/news"
)

// DeleteHandler serves DELETE /api/news/{id}.
// A malformed id answers 404 like an absent one.
type DeleteHandler struct{ Svc *newsUC.Service }

// ServeHTTP 記事削除
//
// @Summary      記事削除
// @Tags         news
// @Produce      json
// @Param        id   path      string  true  "24 hex digit article id"
// @Success      200  {object}  respond.MessageBody  "News deleted successfully"
// @Failure      404  {object}  respond.ErrorBody    "News not found"
// @Failure      500  {object}  respond.ErrorBody
// @Router       /api/news/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := h.Svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, newsUC.ErrInvalidNewsID) {
			err = newsUC.ErrNewsNotFound
		}
		writeError(w, r, err)
		return
	}
	respond.Message(w, http.StatusOK, msgDeleted)
}

// DeleteManyHandler serves DELETE /api/news with body {"newsIds": [...]}.
// Deletions run concurrently and are not rolled back when some ids fail.
type DeleteManyHandler struct{ Svc *newsUC.Service }

// ServeHTTP 記事一括削除
//
// @Summary      記事一括削除
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        ids  body      object  true  "newsIds: array of article ids"
// @Success      200  {object}  respond.MessageBody  "All news deleted successfully"
// @Failure      400  {object}  respond.ErrorBody    "News IDs must be provided as an array"
// @Failure      404  {object}  respond.ErrorBody    "Some news could not be found or deleted"
// @Failure      500  {object}  respond.ErrorBody
// @Router       /api/news [delete]
func (h DeleteManyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	ids, ok := decodeIDs(body)
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgIDsNotArray)
		return
	}

	if _, err := h.Svc.DeleteMany(r.Context(), ids); err != nil {
		writeError(w, r, err)
		return
	}
	respond.Message(w, http.StatusOK, msgAllDeleted)
}

// decodeIDs extracts newsIds from the body. Non-string elements become empty ids, which
// the usecase counts as malformed.
func decodeIDs(body []byte) ([]string, bool) {
	p, err := entity.DecodePayload(body)
	if err != nil {
		return nil, false
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(p["newsIds"], &raw); err != nil || raw == nil {
		return nil, false
	}
	ids := make([]string, len(raw))
	for i, v := range raw {
		_ = json.Unmarshal(v, &ids[i]) // 文字列以外は空 id
	}
	return ids, true
}
