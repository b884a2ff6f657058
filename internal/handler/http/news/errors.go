package news

import (
	"errors"
	"net/http"

	"news-api/internal/domain/entity"
	"news-api/internal/handler/http/respond"
	newsUC "news-api/internal/usecase/news"
)

// Client-facing messages.
const (
	msgInvalidID       = "Invalid news ID"
	msgNotFound        = "News not found"
	msgInvalidDate     = "Invalid date"
	msgIDsNotArray     = "News IDs must be provided as an array"
	msgSomeNotDeleted  = "Some news could not be found or deleted"
	msgDeleted         = "News deleted successfully"
	msgAllDeleted      = "All news deleted successfully"
	msgPayloadTooLarge = "Payload Too Large"
)

// writeError maps usecase errors to status codes. Anything unrecognised is a 500 whose
// cause is logged and never echoed.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *entity.ValidationErrors
	switch {
	case errors.As(err, &verr):
		respond.Errors(w, http.StatusBadRequest, verr.Messages())
	case errors.Is(err, newsUC.ErrInvalidNewsID):
		respond.Error(w, http.StatusBadRequest, msgInvalidID)
	case errors.Is(err, newsUC.ErrInvalidDate):
		respond.Error(w, http.StatusBadRequest, msgInvalidDate)
	case errors.Is(err, newsUC.ErrNewsNotFound):
		respond.Error(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, newsUC.ErrSomeNewsNotDeleted):
		respond.Error(w, http.StatusNotFound, msgSomeNotDeleted)
	default:
		respond.InternalError(w, r, err)
	}
}
