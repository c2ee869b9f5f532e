package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	"github.com/servineo/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var appointmentColumns = []interface{}{
	"id", "id_requester", "id_fixer", "current_requester_name",
	"current_requester_phone", "appointment_description", "starting_time",
	"finishing_time", "appointment_type", "link_id", "display_name_location",
	"lat", "lon", "schedule_state", "cancelled_fixer", "google_event_id",
	"mail", "created_at", "updated_at",
}

// GetByID retrieves an appointment by ID; nil when no row matches
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	query, args, err := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to build query", err)
	}

	appointment, err := scanAppointment(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError(fmt.Sprintf("failed to get appointment %s", id), err)
	}

	return appointment, nil
}

// UpdateByID applies the merge-patch and returns the post-update record.
// Absent patch fields keep their stored value; nil result with nil error
// signals the row vanished (failed write), not a lookup failure.
func (a *AppointmentAdapter) UpdateByID(ctx context.Context, id string, patch *entities.AppointmentPatch) (*entities.Appointment, error) {
	record := patchRecord(patch)
	record["updated_at"] = time.Now().UTC()

	query, args, err := a.db.Update("appointments").
		Set(record).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError(fmt.Sprintf("failed to update appointment %s", id), err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, nil
	}

	return a.GetByID(ctx, id)
}

// SetCancelledByFixer flags a fixer-initiated cancellation and returns the updated row
func (a *AppointmentAdapter) SetCancelledByFixer(ctx context.Context, id string) (*entities.Appointment, error) {
	cancelled := true
	return a.UpdateByID(ctx, id, &entities.AppointmentPatch{CancelledFixer: &cancelled})
}

// patchRecord maps present patch fields to their column writes
func patchRecord(patch *entities.AppointmentPatch) goqu.Record {
	record := goqu.Record{}
	if patch == nil {
		return record
	}
	if patch.CurrentRequesterName != nil {
		record["current_requester_name"] = *patch.CurrentRequesterName
	}
	if patch.CurrentRequesterPhone != nil {
		record["current_requester_phone"] = *patch.CurrentRequesterPhone
	}
	if patch.Description != nil {
		record["appointment_description"] = *patch.Description
	}
	if patch.StartingTime != nil {
		record["starting_time"] = *patch.StartingTime
	}
	if patch.FinishingTime != nil {
		record["finishing_time"] = *patch.FinishingTime
	}
	if patch.AppointmentType != nil {
		record["appointment_type"] = *patch.AppointmentType
	}
	if patch.LinkID != nil {
		record["link_id"] = *patch.LinkID
	}
	if patch.DisplayNameLocation != nil {
		record["display_name_location"] = *patch.DisplayNameLocation
	}
	if patch.Lat != nil {
		record["lat"] = *patch.Lat
	}
	if patch.Lon != nil {
		record["lon"] = *patch.Lon
	}
	if patch.ScheduleState != nil {
		record["schedule_state"] = *patch.ScheduleState
	}
	if patch.CancelledFixer != nil {
		record["cancelled_fixer"] = *patch.CancelledFixer
	}
	if patch.Mail != nil {
		record["mail"] = pq.Array(*patch.Mail)
	}
	return record
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*entities.Appointment, error) {
	appointment := &entities.Appointment{}
	var finishingTime sql.NullTime
	var linkID, displayNameLocation, lat, lon, googleEventID sql.NullString
	var mail pq.StringArray

	err := row.Scan(
		&appointment.ID,
		&appointment.RequesterID,
		&appointment.FixerID,
		&appointment.CurrentRequesterName,
		&appointment.CurrentRequesterPhone,
		&appointment.Description,
		&appointment.StartingTime,
		&finishingTime,
		&appointment.AppointmentType,
		&linkID,
		&displayNameLocation,
		&lat,
		&lon,
		&appointment.ScheduleState,
		&appointment.CancelledFixer,
		&googleEventID,
		&mail,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if finishingTime.Valid {
		appointment.FinishingTime = &finishingTime.Time
	}
	appointment.LinkID = linkID.String
	appointment.DisplayNameLocation = displayNameLocation.String
	if lat.Valid {
		appointment.Lat = &lat.String
	}
	if lon.Valid {
		appointment.Lon = &lon.String
	}
	if googleEventID.Valid && googleEventID.String != "" {
		appointment.GoogleEventID = &googleEventID.String
	}
	appointment.Mail = []string(mail)

	return appointment, nil
}
