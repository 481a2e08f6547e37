package handlers

import (
	"net/http"
	"strconv"
	"strings"

	applog "larder/internal/log"
	"larder/internal/recipes"
)

type createdResponse struct {
	ID uint `json:"id"`
}

// Recipes serves the recipe collection: GET lists (optionally filtered by
// ?q= and capped by ?limit=), POST creates a recipe from a full payload.
func Recipes(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, r, http.StatusServiceUnavailable, "storage not available")
		return
	}

	switch r.Method {
	case http.MethodGet:
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				writeJSONError(w, r, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = parsed
		}
		summaries, err := recipes.List(r.Context(), database, r.URL.Query().Get("q"), limit)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, summaries)
	case http.MethodPost:
		var input recipes.Input
		if !decodeJSON(w, r, &input) {
			return
		}
		recipeID, err := recipes.Create(r.Context(), database, input)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		applog.Debug(r.Context(), "recipe created", "recipeID", recipeID)
		writeJSON(w, r, http.StatusCreated, createdResponse{ID: recipeID})
	default:
		writeJSONError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// RecipeByID serves a single recipe: GET returns the full aggregate, PUT
// replaces it wholesale, DELETE removes it and detaches meal plan entries.
func RecipeByID(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, r, http.StatusServiceUnavailable, "storage not available")
		return
	}

	recipeID, ok := recipeIDFromPath(r.URL.Path)
	if !ok {
		writeJSONError(w, r, http.StatusBadRequest, "invalid recipe id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		detail, err := recipes.LoadDetail(r.Context(), database, recipeID)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, detail)
	case http.MethodPut:
		var input recipes.Input
		if !decodeJSON(w, r, &input) {
			return
		}
		if err := recipes.Replace(r.Context(), database, recipeID, input); err != nil {
			respondDomainError(w, r, err)
			return
		}
		applog.Debug(r.Context(), "recipe replaced", "recipeID", recipeID)
		detail, err := recipes.LoadDetail(r.Context(), database, recipeID)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, detail)
	case http.MethodDelete:
		if err := recipes.Delete(r.Context(), database, recipeID); err != nil {
			respondDomainError(w, r, err)
			return
		}
		applog.Debug(r.Context(), "recipe deleted", "recipeID", recipeID)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeJSONError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func recipeIDFromPath(path string) (uint, bool) {
	trimmed := strings.TrimPrefix(path, "/app/api/recipes/")
	if trimmed == path || trimmed == "" || strings.Contains(trimmed, "/") {
		return 0, false
	}
	parsed, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}
