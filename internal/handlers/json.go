package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	applog "larder/internal/log"
	"larder/internal/planner"
	"larder/internal/recipes"
)

const maxRequestBody = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(r.Context(), "failed to encode response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, errorResponse{Error: message})
}

// decodeJSON reads the request body into dst and reports failure to the
// client itself. Callers bail out when it returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		applog.Debug(r.Context(), "failed to decode request body", "error", err)
		writeJSONError(w, r, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// respondDomainError translates store and validation errors into the right
// status code; anything unrecognised is logged and reported as a 500.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recipes.ErrInvalid), errors.Is(err, planner.ErrInvalid):
		writeJSONError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeJSONError(w, r, http.StatusNotFound, "not found")
	default:
		applog.Error(r.Context(), "request failed", "error", err)
		writeJSONError(w, r, http.StatusInternalServerError, "internal error")
	}
}
