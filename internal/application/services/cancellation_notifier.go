package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
)

// CancellationNotifier tells a requester that the fixer walked away from
// a booked appointment
type CancellationNotifier struct {
	users         repositories.UserRepository
	notifications *NotificationService
}

// NewCancellationNotifier creates a new cancellation notifier
func NewCancellationNotifier(users repositories.UserRepository, notifications *NotificationService) *CancellationNotifier {
	return &CancellationNotifier{
		users:         users,
		notifications: notifications,
	}
}

// NotifyFixerCancellation resolves both parties and sends the cancellation
// notice to the requester. Either party missing an email or a messaging
// number counts as unreachable and nothing is sent. It reports whether at
// least one channel delivered; this is the only notifier whose channel
// outcomes feed back into a return value.
func (c *CancellationNotifier) NotifyFixerCancellation(ctx context.Context, requesterID, fixerID string, appointmentID string, appointmentDate time.Time) bool {
	requester, err := c.users.GetByID(ctx, requesterID)
	if err != nil || requester == nil || !requester.Reachable() {
		log.Warn().Err(err).Str("requester_id", requesterID).Msg("requester unreachable, skipping cancellation notice")
		return false
	}

	fixer, err := c.users.GetByID(ctx, fixerID)
	if err != nil || fixer == nil || !fixer.Reachable() {
		log.Warn().Err(err).Str("fixer_id", fixerID).Msg("fixer unreachable, skipping cancellation notice")
		return false
	}

	fixerName := fixer.Name
	if fixerName == "" {
		fixerName = "El profesional"
	}

	message := fmt.Sprintf(
		"*❌ CITA CANCELADA*\n\n"+
			"Lamentamos informarte que *%s* ha cancelado la cita programada para el %s.\n\n"+
			"Puedes agendar una nueva cita con otro profesional desde la app.\n\n"+
			"Gracias por tu comprensión.",
		fixerName, formatAppointmentDate(appointmentDate))

	return c.notifications.SendCancellationNotice(ctx, requester, appointmentID, message)
}

// SendCancellationNotice dispatches one rendered cancellation message to
// the requester on both channels; true when at least one delivered
func (n *NotificationService) SendCancellationNotice(ctx context.Context, requester *entities.User, appointmentID, message string) bool {
	outcomes := n.dispatchBestEffort(ctx, appointmentID, entities.NotificationCancellation, []channelAttempt{
		{
			Channel:   entities.ChannelWhatsApp,
			Recipient: requester.ContactNumber(),
			Send: func() (string, error) {
				return n.messaging.Send(requester.ContactNumber(), message)
			},
		},
		{
			Channel:   entities.ChannelEmail,
			Recipient: requester.Email,
			Send: func() (string, error) {
				return n.email.Send(requester.Email, "❌ Cita Cancelada", markupToHTML(message))
			},
		},
	})
	return outcomes.AnySucceeded()
}
