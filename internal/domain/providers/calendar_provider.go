package providers

import (
	"context"

	"github.com/servineo/backend/internal/domain/entities"
)

// CalendarProvider defines the interface for the external calendar service.
// Neither call is retried by the core; a transport failure surfaces as-is.
type CalendarProvider interface {
	// UpdateEvent pushes a rebuilt invite payload to an existing event
	UpdateEvent(ctx context.Context, eventID string, invite *entities.EventInvite) error

	// DeleteEvent removes the event. Once an appointment is cancelled this is
	// the only sync still valid for its event id.
	DeleteEvent(ctx context.Context, eventID string) error
}
