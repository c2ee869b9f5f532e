package database

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	"github.com/servineo/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// NotificationLogAdapter implements NotificationLogRepository over sqlx
type NotificationLogAdapter struct {
	db *sqlx.DB
}

// NewNotificationLogAdapter creates a new notification log adapter
func NewNotificationLogAdapter(client *postgres.Client) repositories.NotificationLogRepository {
	return &NotificationLogAdapter{
		db: sqlx.NewDb(client.DB(), "postgres"),
	}
}

// Create inserts one delivery attempt record
func (a *NotificationLogAdapter) Create(ctx context.Context, record *entities.NotificationRecord) error {
	query := `
		INSERT INTO appointment_notifications
		(id, appointment_id, notification_type, channel, recipient, status,
		 message_id, error_message, sent_at, failed_at, created_at)
		VALUES (:id, :appointment_id, :notification_type, :channel, :recipient, :status,
		 :message_id, :error_message, :sent_at, :failed_at, :created_at)
	`
	if _, err := a.db.NamedExecContext(ctx, query, record); err != nil {
		return apperrors.NewPersistenceError("failed to record notification attempt", err)
	}
	return nil
}
