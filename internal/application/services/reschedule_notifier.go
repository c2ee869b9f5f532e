package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
)

// RescheduleSnapshot carries the appointment fields a reschedule message
// needs. The orchestrator captures one before persisting the patch and one
// after, so the message can show both the date being moved away from and
// the new one without the notifier seeing the rest of the appointment.
type RescheduleSnapshot struct {
	FixerID         string
	RequesterName   string
	Description     string
	StartingTime    time.Time
	AppointmentType entities.AppointmentType
}

// RescheduleNotifier resolves the affected fixer and hands the rendered
// reschedule notice to the dispatcher
type RescheduleNotifier struct {
	users         repositories.UserRepository
	notifications *NotificationService
}

// NewRescheduleNotifier creates a new reschedule notifier
func NewRescheduleNotifier(users repositories.UserRepository, notifications *NotificationService) *RescheduleNotifier {
	return &RescheduleNotifier{
		users:         users,
		notifications: notifications,
	}
}

// NotifyReschedule tells the fixer their appointment moved. The whole path
// is best-effort: an unresolvable or unreachable fixer, or a channel
// failure, is logged and never surfaced to the caller.
func (r *RescheduleNotifier) NotifyReschedule(ctx context.Context, appointmentID string, before, after RescheduleSnapshot, reason string) {
	fixer, err := r.users.GetByID(ctx, before.FixerID)
	if err != nil {
		log.Error().Err(err).Str("fixer_id", before.FixerID).Msg("failed to resolve fixer for reschedule notice")
		return
	}
	if fixer == nil || !fixer.Reachable() {
		log.Warn().Str("fixer_id", before.FixerID).Msg("fixer unreachable, skipping reschedule notice")
		return
	}

	fixerName := fixer.Name
	if fixerName == "" {
		fixerName = "Profesional"
	}
	requesterName := before.RequesterName
	if requesterName == "" {
		requesterName = "El cliente"
	}
	description := after.Description
	if description == "" {
		description = before.Description
	}
	if description == "" {
		description = "Sin descripción"
	}

	message := fmt.Sprintf(
		"*🔄 CITA REPROGRAMADA*\n\n"+
			"Hola *%s*,\n\n"+
			"El cliente *%s* ha reprogramado su cita.\n\n"+
			"*Motivo:* %s\n\n"+
			"*Fecha anterior:* %s\n\n"+
			"*Nueva fecha:* %s\n\n"+
			"*Modalidad:* %s\n\n"+
			"*Servicio:* %s\n\n"+
			"Por favor, revisa los detalles en la app.",
		fixerName, requesterName, reason,
		formatLocalizedDateTime(before.StartingTime),
		formatLocalizedDateTime(after.StartingTime),
		modalityText(after.AppointmentType),
		description)

	r.notifications.SendRescheduleNotice(ctx, fixer, appointmentID, message)
}

// SendRescheduleNotice dispatches one rendered reschedule message to the
// fixer on both channels
func (n *NotificationService) SendRescheduleNotice(ctx context.Context, fixer *entities.User, appointmentID, message string) {
	n.dispatchBestEffort(ctx, appointmentID, entities.NotificationReschedule, []channelAttempt{
		{
			Channel:   entities.ChannelWhatsApp,
			Recipient: fixer.ContactNumber(),
			Send: func() (string, error) {
				return n.messaging.Send(fixer.ContactNumber(), message)
			},
		},
		{
			Channel:   entities.ChannelEmail,
			Recipient: fixer.Email,
			Send: func() (string, error) {
				return n.email.Send(fixer.Email, "🔄 Cita Reprogramada", markupToHTML(message))
			},
		},
	})
}
