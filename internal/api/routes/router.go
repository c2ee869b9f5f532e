package routes

import (
	"net/http"

	"github.com/servineo/backend/internal/api/handlers"
	"github.com/servineo/backend/internal/api/middleware"
	"github.com/servineo/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	appointmentHandler *handlers.AppointmentHandler
	userHandler        *handlers.UserHandler
	fixerSearchHandler *handlers.FixerSearchHandler
	trackingHandler    *handlers.TrackingHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	appointmentHandler *handlers.AppointmentHandler,
	userHandler *handlers.UserHandler,
	fixerSearchHandler *handlers.FixerSearchHandler,
	trackingHandler *handlers.TrackingHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		appointmentHandler: appointmentHandler,
		userHandler:        userHandler,
		fixerSearchHandler: fixerSearchHandler,
		trackingHandler:    trackingHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Appointment mutation endpoints
	r.mux.HandleFunc("PATCH /api/crud_update/appointment/{id}", r.appointmentHandler.UpdateAppointment)
	r.mux.HandleFunc("POST /api/crud_update/appointment/{id}/cancel-by-fixer", r.appointmentHandler.CancelByFixer)

	// User endpoints
	r.mux.HandleFunc("GET /api/users/{id}", r.userHandler.GetUser)
	r.mux.HandleFunc("PUT /api/crud_update/fixer/availability/{id}", r.userHandler.SetAvailability)

	// Fixer search endpoints
	if r.fixerSearchHandler != nil {
		r.mux.HandleFunc("GET /api/fixers/search", r.fixerSearchHandler.SearchFixers)
		r.mux.HandleFunc("POST /api/fixers/{id}/index", r.fixerSearchHandler.IndexFixer)
		r.mux.HandleFunc("DELETE /api/fixers/{id}/index", r.fixerSearchHandler.RemoveFixer)
	}

	// Live tracking streams
	if r.trackingHandler != nil {
		r.mux.HandleFunc("GET /api/tracking/appointments/stream", r.trackingHandler.StreamAllAppointments)
		r.mux.HandleFunc("GET /api/tracking/appointments/{id}/stream", r.trackingHandler.StreamAppointment)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS wraps everything so headers are present on every response.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
