package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/providers"
)

// heartbeatInterval keeps idle streams alive through proxies
const heartbeatInterval = 30 * time.Second

// TrackingHandler streams appointment mutations to admin clients over
// Server-Sent Events. Every mutation the update flow publishes on the
// event bus is forwarded as one SSE event.
type TrackingHandler struct {
	eventBus providers.EventBus
}

// NewTrackingHandler creates a new tracking handler
func NewTrackingHandler(eventBus providers.EventBus) *TrackingHandler {
	return &TrackingHandler{
		eventBus: eventBus,
	}
}

// StreamAppointment handles GET /api/tracking/appointments/{id}/stream.
// It follows the mutations of a single appointment until the client
// disconnects.
func (h *TrackingHandler) StreamAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID := r.PathValue("id")
	if appointmentID == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	h.stream(w, r, providers.AppointmentChannel(appointmentID), map[string]interface{}{
		"appointment_id": appointmentID,
		"timestamp":      time.Now().UTC(),
	})
}

// StreamAllAppointments handles GET /api/tracking/appointments/stream.
// It follows every appointment mutation in the system.
func (h *TrackingHandler) StreamAllAppointments(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, providers.EventChannelAppointments, map[string]interface{}{
		"timestamp": time.Now().UTC(),
	})
}

// stream runs one SSE connection: subscribe, confirm, then interleave
// bus events with heartbeats until the client goes away.
func (h *TrackingHandler) stream(w http.ResponseWriter, r *http.Request, channel string, hello map[string]interface{}) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	eventChan, err := h.eventBus.Subscribe(r.Context(), channel)
	if err != nil {
		log.Error().Err(err).Str("channel", channel).Msg("failed to subscribe to appointment events")
		respondWithError(w, http.StatusInternalServerError, "event stream unavailable")
		return
	}

	clientChan := make(chan *entities.AppointmentEvent, 10)
	go forwardAppointmentEvents(r.Context(), eventChan, clientChan)

	sendTrackingEvent(w, "connected", hello)
	flusher.Flush()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Debug().Str("channel", channel).Msg("tracking client disconnected")
			return
		case <-ticker.C:
			sendTrackingEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now().UTC(),
			})
			flusher.Flush()
		case event := <-clientChan:
			if event == nil {
				continue
			}
			sendTrackingEvent(w, string(event.Type), event)
			flusher.Flush()
		}
	}
}

// forwardAppointmentEvents drains the bus subscription into the client
// channel, dropping events when the client cannot keep up
func forwardAppointmentEvents(ctx context.Context, eventChan <-chan *entities.AppointmentEvent, clientChan chan<- *entities.AppointmentEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, open := <-eventChan:
			if !open {
				return
			}
			select {
			case clientChan <- event:
			default:
			}
		}
	}
}

// sendTrackingEvent writes one SSE frame
func sendTrackingEvent(w http.ResponseWriter, eventType string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal tracking event")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", payload)
}
