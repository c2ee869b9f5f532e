package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
)

// AvailabilityWriter defines the interface for fixer availability updates
type AvailabilityWriter interface {
	SetFixerAvailability(ctx context.Context, fixerID string, availability *entities.Availability) error
}

// UserHandler handles user lookup and fixer availability requests
type UserHandler struct {
	users        repositories.UserRepository
	availability AvailabilityWriter
}

// NewUserHandler creates a new user handler
func NewUserHandler(users repositories.UserRepository, availability AvailabilityWriter) *UserHandler {
	return &UserHandler{
		users:        users,
		availability: availability,
	}
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if user == nil {
		respondWithError(w, http.StatusNotFound, "user not found")
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// SetAvailability handles PUT /api/crud_update/fixer/availability/{id}.
// The body is the full weekly structure; it replaces whatever was stored.
func (h *UserHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "fixer ID is required")
		return
	}

	var availability entities.Availability
	if err := json.NewDecoder(r.Body).Decode(&availability); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.availability.SetFixerAvailability(r.Context(), id, &availability); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"availability": availability,
	})
}
