package handlers

import (
	"net/http"

	"larder/internal/planner"
)

// ShoppingList aggregates ingredient demand for every planned meal between
// ?start= and ?end= (inclusive, YYYY-MM-DD).
func ShoppingList(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, r, http.StatusServiceUnavailable, "storage not available")
		return
	}
	if r.Method != http.MethodGet {
		writeJSONError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	list, err := planner.GenerateShoppingList(r.Context(), database, query.Get("start"), query.Get("end"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, list)
}
