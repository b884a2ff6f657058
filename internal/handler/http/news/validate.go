package news

import (
	"context"
	"errors"
	"io"
	"net/http"

	"news-api/internal/domain/entity"
	"news-api/internal/handler/http/respond"
)

type ctxKey int

const (
	inputKey ctxKey = iota
	patchKey
)

// RequireInput validates the body against the strict schema (create, replace) and stores
// the typed input in the request context. A malformed {id} path value is rejected first.
func RequireInput(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !checkPathID(w, r) {
			return
		}
		p, ok := readPayload(w, r)
		if !ok {
			return
		}
		in, err := entity.ValidateRequired(p)
		if err != nil {
			writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), inputKey, in)))
	})
}

// RequirePatch validates the body against the optional schema (patch). Unknown fields
// are dropped.
func RequirePatch(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !checkPathID(w, r) {
			return
		}
		p, ok := readPayload(w, r)
		if !ok {
			return
		}
		patch, err := entity.ValidatePatch(p)
		if err != nil {
			writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), patchKey, patch)))
	})
}

// InputFromContext returns the input stored by RequireInput.
func InputFromContext(ctx context.Context) (entity.NewsInput, bool) {
	in, ok := ctx.Value(inputKey).(entity.NewsInput)
	return in, ok
}

// PatchFromContext returns the patch stored by RequirePatch.
func PatchFromContext(ctx context.Context) (entity.NewsPatch, bool) {
	p, ok := ctx.Value(patchKey).(entity.NewsPatch)
	return p, ok
}

var errNoValidatedBody = errors.New("handler mounted without validation middleware")

func checkPathID(w http.ResponseWriter, r *http.Request) bool {
	id := r.PathValue("id")
	if id != "" && !entity.IsValidID(id) {
		respond.Error(w, http.StatusBadRequest, msgInvalidID)
		return false
	}
	return true
}

// readBody reads the whole request body, answering 413 when the body limit is hit.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Body == nil {
		return nil, true
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			respond.Error(w, http.StatusRequestEntityTooLarge, msgPayloadTooLarge)
			return nil, false
		}
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return body, true
}

func readPayload(w http.ResponseWriter, r *http.Request) (entity.Payload, bool) {
	body, ok := readBody(w, r)
	if !ok {
		return nil, false
	}
	p, err := entity.DecodePayload(body)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return p, true
}
