package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/servineo/backend/internal/domain/entities"
)

// AppointmentUpdater defines the interface for appointment mutation operations
type AppointmentUpdater interface {
	UpdateAppointment(ctx context.Context, id string, patch *entities.AppointmentPatch, reason string) (bool, error)
	CancelByFixer(ctx context.Context, id string) (*entities.Appointment, error)
}

// AppointmentHandler handles appointment mutation requests
type AppointmentHandler struct {
	service AppointmentUpdater
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service AppointmentUpdater) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
	}
}

// UpdateAppointment handles PATCH /api/crud_update/appointment/{id}.
//
// The body is a partial appointment document. Keys set to JSON null are
// stripped before the patch reaches the service, so only keys the caller
// actually sent overwrite stored values; an explicit false or empty string
// is a real write. An optional "reprogramReason" key rides along in the
// same body and never reaches the stored record.
func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	patch, reason, err := decodeAppointmentPatch(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if patch.IsZero() && reason == "" {
		respondWithError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	updated, err := h.service.UpdateAppointment(r.Context(), id, patch, reason)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"updated": updated,
	})
}

// CancelByFixer handles POST /api/crud_update/appointment/{id}/cancel-by-fixer
func (h *AppointmentHandler) CancelByFixer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	appointment, err := h.service.CancelByFixer(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// decodeAppointmentPatch decodes the request body into a null-stripped
// patch plus the optional reschedule reason
func decodeAppointmentPatch(r *http.Request) (*entities.AppointmentPatch, string, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, "", err
	}

	var reason string
	if rawReason, ok := raw["reprogramReason"]; ok {
		if !bytes.Equal(rawReason, []byte("null")) {
			if err := json.Unmarshal(rawReason, &reason); err != nil {
				return nil, "", err
			}
		}
		delete(raw, "reprogramReason")
	}

	for key, value := range raw {
		if bytes.Equal(value, []byte("null")) {
			delete(raw, key)
		}
	}

	stripped, err := json.Marshal(raw)
	if err != nil {
		return nil, "", err
	}

	var patch entities.AppointmentPatch
	if err := json.Unmarshal(stripped, &patch); err != nil {
		return nil, "", err
	}

	return &patch, reason, nil
}
