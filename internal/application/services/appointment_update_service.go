package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/providers"
	"github.com/servineo/backend/internal/domain/repositories"
	"github.com/servineo/backend/internal/infrastructure/observability"
	apperrors "github.com/servineo/backend/pkg/errors"
)

const defaultRescheduleReason = "El cliente no especificó un motivo."

// RescheduleAnnouncer announces a reschedule to the affected fixer
type RescheduleAnnouncer interface {
	NotifyReschedule(ctx context.Context, appointmentID string, before, after RescheduleSnapshot, reason string)
}

// CancellationAnnouncer announces a fixer-initiated cancellation to the requester
type CancellationAnnouncer interface {
	NotifyFixerCancellation(ctx context.Context, requesterID, fixerID, appointmentID string, appointmentDate time.Time) bool
}

// AppointmentUpdateService owns the appointment mutation flow: it applies
// partial updates, classifies the change, keeps the linked calendar event
// in sync and drives the notification side effects.
type AppointmentUpdateService struct {
	appointments  repositories.AppointmentRepository
	users         repositories.UserRepository
	calendar      providers.CalendarProvider
	reschedules   RescheduleAnnouncer
	cancellations CancellationAnnouncer
	events        providers.EventBus
	metrics       *observability.Metrics
}

// NewAppointmentUpdateService creates a new appointment update service
func NewAppointmentUpdateService(
	appointments repositories.AppointmentRepository,
	users repositories.UserRepository,
	calendar providers.CalendarProvider,
	reschedules RescheduleAnnouncer,
	cancellations CancellationAnnouncer,
	events providers.EventBus,
	metrics *observability.Metrics,
) *AppointmentUpdateService {
	return &AppointmentUpdateService{
		appointments:  appointments,
		users:         users,
		calendar:      calendar,
		reschedules:   reschedules,
		cancellations: cancellations,
		events:        events,
		metrics:       metrics,
	}
}

// UpdateAppointment applies a merge-patch to an existing appointment.
//
// It loads the prior state, persists the patch, then classifies the change:
// a moved start instant or a modality switch counts as a reschedule and
// fires a best-effort notice to the fixer. When the appointment carries a
// live calendar event, the event is deleted if the patch cancels the
// appointment and otherwise resynced unconditionally from the post-update
// state. Calendar failures propagate; notification failures never do.
//
// Returns false without error when the row vanished during the write.
func (s *AppointmentUpdateService) UpdateAppointment(ctx context.Context, id string, patch *entities.AppointmentPatch, reason string) (bool, error) {
	before, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if before == nil {
		return false, apperrors.NewNotFoundError("appointment not found")
	}

	after, err := s.appointments.UpdateByID(ctx, id, patch)
	if err != nil {
		return false, err
	}
	if after == nil {
		log.Warn().Str("appointment_id", id).Msg("appointment update wrote no rows")
		return false, nil
	}

	isRescheduled := !before.StartingTime.Equal(after.StartingTime) ||
		before.AppointmentType != after.AppointmentType

	if isRescheduled {
		if reason == "" {
			reason = defaultRescheduleReason
		}
		s.reschedules.NotifyReschedule(ctx, after.ID, snapshotOf(before), snapshotOf(after), reason)
	}

	if before.HasCalendarEvent() {
		eventID := *before.GoogleEventID
		if patch.SetsCancelled() {
			if err := s.calendar.DeleteEvent(ctx, eventID); err != nil {
				observability.RecordCalendarSyncMetric(ctx, s.metrics, "delete", false)
				return false, err
			}
			observability.RecordCalendarSyncMetric(ctx, s.metrics, "delete", true)
		} else {
			if err := s.calendar.UpdateEvent(ctx, eventID, buildEventInvite(after)); err != nil {
				observability.RecordCalendarSyncMetric(ctx, s.metrics, "update", false)
				return false, err
			}
			observability.RecordCalendarSyncMetric(ctx, s.metrics, "update", true)
		}
	}

	eventType := entities.AppointmentEventUpdated
	if patch.SetsCancelled() {
		eventType = entities.AppointmentEventCancelled
	} else if isRescheduled {
		eventType = entities.AppointmentEventRescheduled
	}
	s.publishEvent(ctx, after, eventType)

	return true, nil
}

// CancelByFixer flags the appointment as unilaterally cancelled by the
// fixer, notifies the requester best-effort, and removes any linked
// calendar event. Calendar deletion failures propagate.
func (s *AppointmentUpdateService) CancelByFixer(ctx context.Context, id string) (*entities.Appointment, error) {
	before, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	after, err := s.appointments.SetCancelledByFixer(ctx, id)
	if err != nil {
		return nil, err
	}
	if after == nil {
		return nil, apperrors.NewNotFoundError("appointment not found")
	}

	if before != nil {
		if !s.cancellations.NotifyFixerCancellation(ctx, after.RequesterID, after.FixerID, after.ID, after.StartingTime) {
			log.Warn().Str("appointment_id", id).Msg("cancellation notice did not reach the requester on any channel")
		}
	}

	if after.HasCalendarEvent() {
		if err := s.calendar.DeleteEvent(ctx, *after.GoogleEventID); err != nil {
			observability.RecordCalendarSyncMetric(ctx, s.metrics, "delete", false)
			return nil, err
		}
		observability.RecordCalendarSyncMetric(ctx, s.metrics, "delete", true)
	}

	s.publishEvent(ctx, after, entities.AppointmentEventCancelled)

	return after, nil
}

// SetFixerAvailability wholesale-replaces the fixer's availability.
// No merge with prior slots, no range validation.
func (s *AppointmentUpdateService) SetFixerAvailability(ctx context.Context, fixerID string, availability *entities.Availability) error {
	if availability == nil {
		return apperrors.NewValidationError("availability is required")
	}
	return s.users.SetAvailability(ctx, fixerID, availability)
}

// publishEvent broadcasts the mutation on the event bus; always best-effort
func (s *AppointmentUpdateService) publishEvent(ctx context.Context, appointment *entities.Appointment, eventType entities.AppointmentEventType) {
	if s.events == nil {
		return
	}

	event := &entities.AppointmentEvent{
		ID:            uuid.New().String(),
		AppointmentID: appointment.ID,
		Type:          eventType,
		FixerID:       appointment.FixerID,
		RequesterID:   appointment.RequesterID,
		StartingTime:  appointment.StartingTime,
		OccurredAt:    time.Now().UTC(),
	}

	for _, channel := range []string{providers.EventChannelAppointments, providers.AppointmentChannel(appointment.ID)} {
		if err := s.events.Publish(ctx, channel, event); err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("failed to publish appointment event")
		}
	}
}

// snapshotOf trims an appointment down to the fields a reschedule notice
// may see
func snapshotOf(a *entities.Appointment) RescheduleSnapshot {
	return RescheduleSnapshot{
		FixerID:         a.FixerID,
		RequesterName:   a.CurrentRequesterName,
		Description:     a.Description,
		StartingTime:    a.StartingTime,
		AppointmentType: a.AppointmentType,
	}
}

// buildEventInvite rebuilds the calendar invite payload from the
// post-update appointment state
func buildEventInvite(a *entities.Appointment) *entities.EventInvite {
	invite := &entities.EventInvite{
		Recipients:  a.Mail,
		Title:       "Cita Servineo",
		Description: "Cliente: " + a.CurrentRequesterName + "\nContacto: " + a.CurrentRequesterPhone + "\nDescripcion: " + a.Description,
		Start:       a.StartingTime,
		End:         a.EffectiveEnd(),
		IsVirtual:   a.IsVirtual(),
	}

	if a.IsVirtual() {
		invite.CustomLink = a.LinkID
	} else {
		invite.LocationName = a.DisplayNameLocation
		if a.Lat != nil && a.Lon != nil {
			invite.LocationCoordinates = &entities.Coordinates{Lat: *a.Lat, Lon: *a.Lon}
		}
	}

	return invite
}
