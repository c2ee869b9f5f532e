package providers

import (
	"context"

	"github.com/servineo/backend/internal/domain/entities"
)

// EventBus defines the interface for broadcasting appointment events
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel
	Publish(ctx context.Context, channel string, event *entities.AppointmentEvent) error

	// Subscribe subscribes to events on a channel until ctx is done
	Subscribe(ctx context.Context, channel string) (<-chan *entities.AppointmentEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelAppointments is the broadcast channel for all appointment mutations
const EventChannelAppointments = "appointments:updates"

// AppointmentChannel returns the channel name scoped to one appointment
func AppointmentChannel(appointmentID string) string {
	return "appointments:" + appointmentID
}
