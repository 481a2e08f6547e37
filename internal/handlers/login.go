package handlers

import (
	"errors"
	"net/http"
	"strings"

	applog "larder/internal/log"
	"larder/models"
)

type credentialsRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func sessionPayload(user *models.User) sessionResponse {
	return sessionResponse{ID: user.ID, Email: user.Email, Name: user.Name}
}

// Login processes sign-in submissions.
func Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if sessionManager == nil || database == nil {
		applog.Debug(r.Context(), "authentication dependencies unavailable", "hasSession", sessionManager != nil, "hasDatabase", database != nil)
		writeJSONError(w, r, http.StatusServiceUnavailable, "authentication not available")
		return
	}

	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		writeJSONError(w, r, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := authenticate(r, email, req.Password)
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			writeJSONError(w, r, http.StatusUnauthorized, errInvalidCredentials.Error())
			return
		}
		writeJSONError(w, r, http.StatusInternalServerError, "unable to sign in")
		return
	}

	applog.Debug(r.Context(), "authentication succeeded", "email", user.Email)
	writeJSON(w, r, http.StatusOK, sessionPayload(user))
}
