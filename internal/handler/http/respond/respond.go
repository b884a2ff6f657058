// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling with sanitization to prevent leaking sensitive information.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"news-api/internal/observability/logging"
)

// InternalServerError is the only message ever returned for 5xx responses.
const InternalServerError = "Internal Server Error"

// ErrorBody is the JSON body of error responses. Error holds either a single
// message or the list of schema violations.
type ErrorBody struct {
	Error any `json:"error"`
}

// MessageBody is the JSON body of responses that carry only a message.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes {"error": msg}.
func Error(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, ErrorBody{Error: msg})
}

// Errors writes {"error": [msgs...]}.
func Errors(w http.ResponseWriter, code int, msgs []string) {
	if msgs == nil {
		msgs = []string{}
	}
	JSON(w, code, ErrorBody{Error: msgs})
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, MessageBody{Message: msg})
}

// InternalError logs the sanitized cause and writes a generic 500 response.
// The cause is never sent to the client.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.WithRequestID(r.Context(), logging.FromContext(r.Context()))
	// 機密情報をマスクしてログ出力
	logger.Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", SanitizeError(err)))
	Error(w, http.StatusInternalServerError, InternalServerError)
}
