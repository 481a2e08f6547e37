package handlers

import (
	"net/http"
	"strings"

	"larder/internal/ai"
	applog "larder/internal/log"
	"larder/internal/recipes"
)

type generateRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
	Save   bool   `json:"save,omitempty"`
}

type generateResponse struct {
	Recipe recipes.Input `json:"recipe"`
	ID     *uint         `json:"id,omitempty"`
}

// GenerateRecipe asks the AI client for a recipe matching the prompt. With
// "save": true the result is persisted immediately and the new id returned;
// otherwise the caller gets the draft to review and save through the
// regular recipe endpoint.
func GenerateRecipe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if aiClient == nil {
		writeJSONError(w, r, http.StatusServiceUnavailable, "recipe generation not available")
		return
	}

	var req generateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSONError(w, r, http.StatusBadRequest, "prompt is required")
		return
	}

	input, err := aiClient.GenerateRecipe(r.Context(), req.Prompt, ai.FetchOptions{ModelOverride: req.Model})
	if err != nil {
		applog.Error(r.Context(), "recipe generation failed", "error", err)
		writeJSONError(w, r, http.StatusBadGateway, "recipe generation failed")
		return
	}

	resp := generateResponse{Recipe: input}
	if req.Save {
		if database == nil {
			writeJSONError(w, r, http.StatusServiceUnavailable, "storage not available")
			return
		}
		recipeID, err := recipes.Create(r.Context(), database, input)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		applog.Debug(r.Context(), "generated recipe saved", "recipeID", recipeID)
		resp.ID = &recipeID
		writeJSON(w, r, http.StatusCreated, resp)
		return
	}

	writeJSON(w, r, http.StatusOK, resp)
}
