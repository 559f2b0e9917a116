package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"carlink-backend/internal/domain"
	"carlink-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps domain errors onto HTTP statuses. Invariant violations are
// user-facing and carry their reason; infrastructure errors are logged and
// masked.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ive *domain.InvalidOperationError
	switch {
	case errors.As(err, &ive):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: ive.Reason})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrVersionConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "the record was modified concurrently, please retry"})
	default:
		logger.Error("request failed", "path", r.URL.Path, "method", r.Method, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
