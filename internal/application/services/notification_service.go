package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	"github.com/servineo/backend/internal/infrastructure/observability"
)

// NotificationService composes the channel providers and owns message
// delivery: it renders per-party message bodies and fans them out across
// email and messaging with per-channel failure isolation.
type NotificationService struct {
	email     EmailChannel
	messaging MessagingChannel
	logRepo   repositories.NotificationLogRepository
	metrics   *observability.Metrics
}

// NewNotificationService creates a new notification service
func NewNotificationService(email EmailChannel, messaging MessagingChannel, logRepo repositories.NotificationLogRepository, metrics *observability.Metrics) *NotificationService {
	return &NotificationService{
		email:     email,
		messaging: messaging,
		logRepo:   logRepo,
		metrics:   metrics,
	}
}

// SendAppointmentConfirmation notifies both parties that a booking landed.
// The whole path is fire-and-forget: no channel failure is surfaced.
func (n *NotificationService) SendAppointmentConfirmation(ctx context.Context, fixer, requester *entities.User, appointment *entities.Appointment) {
	fixerName := fixer.Name
	if fixerName == "" {
		fixerName = "Profesional"
	}
	requesterName := requester.Name
	if requesterName == "" {
		requesterName = "Cliente"
	}

	dateText := formatLocalizedDateTime(appointment.StartingTime)
	modality := modalityText(appointment.AppointmentType)

	details := appointment.Description
	if details == "" {
		details = "Sin descripción"
	}

	var modalityDetails string
	if appointment.AppointmentType == entities.AppointmentTypePresential {
		modalityDetails = appointment.DisplayNameLocation
		if modalityDetails == "" {
			modalityDetails = "Ubicación no especificada"
		}
	} else {
		modalityDetails = appointment.LinkID
		if modalityDetails == "" {
			modalityDetails = "Enlace no especificado"
		}
	}

	fixerMessage := fmt.Sprintf(
		"*📅 NUEVA CITA AGENDADA*\n\n"+
			"Hola *%s*,\n\n"+
			"Tienes un nuevo servicio:\n\n"+
			"*Cliente:* %s\n\n"+
			"*Fecha y Hora:* %s\n\n"+
			"*Modalidad:* %s\n\n"+
			"*Servicio solicitado:* %s\n\n"+
			"*Ubicación/Enlace:* %s\n\n"+
			"Por favor, revisa mas detalles en la app.\n"+
			"¡Gracias por ser parte de Servineo!",
		fixerName, requesterName, dateText, modality, details, modalityDetails)

	requesterMessage := fmt.Sprintf(
		"*✅ ¡Cita Agendada Exitosamente!*\n\n"+
			"*Profesional asignado:*\n%s\n\n"+
			"*Fecha y hora:*\n%s\n\n"+
			"*Modalidad:*\n%s\n\n"+
			"%s\n\n"+
			"*Detalles:*\n%s\n\n"+
			"*Tu cita ha sido confirmada.*",
		fixerName, dateText, modality, modalityDetails, details)

	n.dispatchBestEffort(ctx, appointment.ID, entities.NotificationConfirmation, []channelAttempt{
		{
			Channel:   entities.ChannelWhatsApp,
			Recipient: fixer.ContactNumber(),
			Send: func() (string, error) {
				return n.messaging.Send(fixer.ContactNumber(), fixerMessage)
			},
		},
		{
			Channel:   entities.ChannelEmail,
			Recipient: fixer.Email,
			Send: func() (string, error) {
				return n.email.Send(fixer.Email, "📅 NUEVA CITA AGENDADA", markupToHTML(fixerMessage))
			},
		},
		{
			Channel:   entities.ChannelWhatsApp,
			Recipient: requester.ContactNumber(),
			Send: func() (string, error) {
				return n.messaging.Send(requester.ContactNumber(), requesterMessage)
			},
		},
		{
			Channel:   entities.ChannelEmail,
			Recipient: requester.Email,
			Send: func() (string, error) {
				return n.email.Send(requester.Email, "✅ ¡Cita Agendada Exitosamente!", markupToHTML(requesterMessage))
			},
		},
	})
}

// markupToHTML converts the messaging rendering into a simple HTML body:
// bold markers are stripped and line breaks become <br>
func markupToHTML(message string) string {
	html := strings.ReplaceAll(message, "*", "")
	return strings.ReplaceAll(html, "\n", "<br>")
}
