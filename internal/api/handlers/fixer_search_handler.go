package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/servineo/backend/internal/domain/entities"
)

// FixerSearcher defines the interface for fixer search operations
type FixerSearcher interface {
	IndexFixer(ctx context.Context, fixerID string) error
	SearchFixers(ctx context.Context, query string, limit int) ([]*entities.FixerSearchResult, error)
	RemoveFixer(ctx context.Context, fixerID string) error
}

// FixerSearchHandler handles fixer search requests
type FixerSearchHandler struct {
	service FixerSearcher
}

// NewFixerSearchHandler creates a new fixer search handler
func NewFixerSearchHandler(service FixerSearcher) *FixerSearchHandler {
	return &FixerSearchHandler{
		service: service,
	}
}

// SearchFixers handles GET /api/fixers/search?q=...&limit=...
func (h *FixerSearchHandler) SearchFixers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	results, err := h.service.SearchFixers(r.Context(), query, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"count":   len(results),
	})
}

// IndexFixer handles POST /api/fixers/{id}/index
func (h *FixerSearchHandler) IndexFixer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "fixer ID is required")
		return
	}

	if err := h.service.IndexFixer(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "indexed"})
}

// RemoveFixer handles DELETE /api/fixers/{id}/index
func (h *FixerSearchHandler) RemoveFixer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "fixer ID is required")
		return
	}

	if err := h.service.RemoveFixer(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
