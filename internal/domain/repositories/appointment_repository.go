package repositories

import (
	"context"

	"github.com/servineo/backend/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	// GetByID retrieves an appointment by ID; nil when absent
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// UpdateByID applies the merge-patch and returns the post-update record.
	// A nil appointment with a nil error means the row vanished between the
	// caller's read and the write (failed/no-op write, not a lookup failure).
	UpdateByID(ctx context.Context, id string, patch *entities.AppointmentPatch) (*entities.Appointment, error)

	// SetCancelledByFixer flags the appointment as unilaterally cancelled by
	// the fixer and returns the post-update record; nil when absent
	SetCancelledByFixer(ctx context.Context, id string) (*entities.Appointment, error)
}

// NotificationLogRepository records every channel delivery attempt
type NotificationLogRepository interface {
	// Create inserts a new delivery record
	Create(ctx context.Context, record *entities.NotificationRecord) error
}
