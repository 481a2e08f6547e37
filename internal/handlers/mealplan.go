package handlers

import (
	"net/http"
	"strconv"
	"strings"

	applog "larder/internal/log"
	"larder/internal/planner"
)

// MealPlan serves the planning grid: GET returns all entries between
// ?start= and ?end= (inclusive, YYYY-MM-DD), POST plans a recipe into one
// (date, meal slot) cell, replacing whatever occupied it.
func MealPlan(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, r, http.StatusServiceUnavailable, "storage not available")
		return
	}

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		entries, err := planner.EntriesInRange(r.Context(), database, query.Get("start"), query.Get("end"))
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, entries)
	case http.MethodPost:
		var input planner.UpsertInput
		if !decodeJSON(w, r, &input) {
			return
		}
		entry, err := planner.UpsertEntry(r.Context(), database, input)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		applog.Debug(r.Context(), "meal plan entry upserted", "entryID", entry.ID, "date", entry.Date, "slot", entry.MealSlot)
		writeJSON(w, r, http.StatusOK, entry)
	default:
		writeJSONError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// MealPlanEntryByID clears one planning-grid cell by entry id.
func MealPlanEntryByID(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, r, http.StatusServiceUnavailable, "storage not available")
		return
	}
	if r.Method != http.MethodDelete {
		writeJSONError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entryID, ok := entryIDFromPath(r.URL.Path)
	if !ok {
		writeJSONError(w, r, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := planner.RemoveEntry(r.Context(), database, entryID); err != nil {
		respondDomainError(w, r, err)
		return
	}
	applog.Debug(r.Context(), "meal plan entry removed", "entryID", entryID)
	w.WriteHeader(http.StatusNoContent)
}

func entryIDFromPath(path string) (uint, bool) {
	trimmed := strings.TrimPrefix(path, "/app/api/meal-plan/")
	if trimmed == path || trimmed == "" || strings.Contains(trimmed, "/") {
		return 0, false
	}
	parsed, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}
