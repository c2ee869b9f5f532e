package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/infrastructure/observability"
)

// EmailChannel sends one HTML email and returns a message handle
type EmailChannel interface {
	Send(to, subject, htmlBody string) (string, error)
}

// MessagingChannel sends one instant message and returns a message handle
type MessagingChannel interface {
	Send(toNumber, body string) (string, error)
}

// channelAttempt is one pending send on one channel against one recipient
type channelAttempt struct {
	Channel   entities.NotificationChannel
	Recipient string
	Send      func() (string, error)
}

// channelOutcome is the result of one attempt
type channelOutcome struct {
	Channel   entities.NotificationChannel
	Recipient string
	MessageID string
	Err       error
}

type dispatchOutcomes []channelOutcome

// AnySucceeded reports whether at least one channel delivered
func (o dispatchOutcomes) AnySucceeded() bool {
	for _, outcome := range o {
		if outcome.Err == nil {
			return true
		}
	}
	return false
}

// dispatchBestEffort runs every attempt, isolating failures per channel:
// a failing send never blocks a sibling attempt and never reaches the
// caller as an error. Every attempt is logged and recorded; callers either
// inspect the outcomes (cancellation) or discard them (everything else).
func (n *NotificationService) dispatchBestEffort(ctx context.Context, appointmentID string, notifType entities.NotificationType, attempts []channelAttempt) dispatchOutcomes {
	outcomes := make(dispatchOutcomes, 0, len(attempts))

	for _, attempt := range attempts {
		if attempt.Recipient == "" {
			continue
		}

		messageID, err := attempt.Send()
		outcomes = append(outcomes, channelOutcome{
			Channel:   attempt.Channel,
			Recipient: attempt.Recipient,
			MessageID: messageID,
			Err:       err,
		})

		if err != nil {
			log.Error().Err(err).
				Str("channel", string(attempt.Channel)).
				Str("recipient", attempt.Recipient).
				Str("type", string(notifType)).
				Msg("notification channel send failed")
		} else {
			log.Info().
				Str("channel", string(attempt.Channel)).
				Str("recipient", attempt.Recipient).
				Str("type", string(notifType)).
				Str("message_id", messageID).
				Msg("notification sent")
		}

		observability.RecordNotificationMetric(ctx, n.metrics, string(attempt.Channel), err == nil)
		n.recordAttempt(ctx, appointmentID, notifType, attempt, messageID, err)
	}

	return outcomes
}

// recordAttempt writes the delivery log row; bookkeeping failures are only logged
func (n *NotificationService) recordAttempt(ctx context.Context, appointmentID string, notifType entities.NotificationType, attempt channelAttempt, messageID string, sendErr error) {
	if n.logRepo == nil {
		return
	}

	now := time.Now().UTC()
	record := &entities.NotificationRecord{
		ID:               uuid.New().String(),
		AppointmentID:    appointmentID,
		NotificationType: notifType,
		Channel:          attempt.Channel,
		Recipient:        attempt.Recipient,
		CreatedAt:        now,
	}

	if sendErr != nil {
		errMsg := sendErr.Error()
		record.Status = entities.NotificationStatusFailed
		record.ErrorMessage = &errMsg
		record.FailedAt = &now
	} else {
		record.Status = entities.NotificationStatusSent
		if messageID != "" {
			record.MessageID = &messageID
		}
		record.SentAt = &now
	}

	if err := n.logRepo.Create(ctx, record); err != nil {
		log.Warn().Err(err).Str("appointment_id", appointmentID).Msg("failed to record notification attempt")
	}
}
