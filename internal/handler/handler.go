package handler

import (
	"encoding/json"
	"net/http"

	"items-api/internal/middleware"
	"items-api/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already written; nothing useful left to send.
		return
	}
}

// writeError writes an error response with the given status code and message.
// The request id set by the logging middleware is echoed as correlationId.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger zerolog.Logger) {
	requestID := middleware.RequestIDFromContext(r.Context())
	logger.Error().
		Str("error", message).
		Int("status", status).
		Str("request_id", requestID).
		Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message, CorrelationID: requestID})
}
