package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"larder/internal/ai"
	"larder/models"
)

func withTestAIClient(t *testing.T, content string) func() {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(server.Close)

	client, err := ai.NewClient(ai.Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("failed to build test client: %v", err)
	}

	original := aiClient
	aiClient = client
	return func() {
		aiClient = original
	}
}

const generatedRecipeJSON = `{
	"title": "Lemon Pasta",
	"servings": 2,
	"ingredients": [{"section": "Main", "lines": [{"item": "spaghetti", "amount": 200, "unit": "g"}]}],
	"instructions": [{"section": "Main", "steps": ["Boil and toss."]}],
	"notes": []
}`

func TestGenerateRecipeWithoutClient(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/app/api/recipes/generate", strings.NewReader(`{"prompt": "anything"}`))
	w := httptest.NewRecorder()
	GenerateRecipe(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without client, got %d", w.Code)
	}
}

func TestGenerateRecipeDraft(t *testing.T) {
	cleanup := withTestAIClient(t, generatedRecipeJSON)
	t.Cleanup(cleanup)

	req := httptest.NewRequest(http.MethodPost, "/app/api/recipes/generate", strings.NewReader(`{"prompt": "something lemony"}`))
	w := httptest.NewRecorder()
	GenerateRecipe(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for draft, got %d: %s", w.Code, w.Body.String())
	}

	var resp generateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Recipe.Title != "Lemon Pasta" || resp.Recipe.SourceType != models.SourceAI {
		t.Fatalf("unexpected draft: %+v", resp.Recipe)
	}
	if resp.ID != nil {
		t.Fatalf("draft must not be persisted, got id %d", *resp.ID)
	}
}

func TestGenerateRecipeSaves(t *testing.T) {
	cleanup := withTestAIClient(t, generatedRecipeJSON)
	t.Cleanup(cleanup)
	_, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	req := httptest.NewRequest(http.MethodPost, "/app/api/recipes/generate", strings.NewReader(`{"prompt": "something lemony", "save": true}`))
	w := httptest.NewRecorder()
	GenerateRecipe(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 when saving, got %d: %s", w.Code, w.Body.String())
	}

	var resp generateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID == nil || *resp.ID == 0 {
		t.Fatalf("expected persisted id, got %+v", resp)
	}

	var recipe models.Recipe
	if err := database.First(&recipe, *resp.ID).Error; err != nil {
		t.Fatalf("expected recipe persisted: %v", err)
	}
	if recipe.SourceType != models.SourceAI {
		t.Fatalf("source type = %q, want %q", recipe.SourceType, models.SourceAI)
	}
}

func TestGenerateRecipeRequiresPrompt(t *testing.T) {
	cleanup := withTestAIClient(t, generatedRecipeJSON)
	t.Cleanup(cleanup)

	req := httptest.NewRequest(http.MethodPost, "/app/api/recipes/generate", strings.NewReader(`{"prompt": "  "}`))
	w := httptest.NewRecorder()
	GenerateRecipe(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank prompt, got %d", w.Code)
	}
}
