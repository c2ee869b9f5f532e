package entities

import (
	"time"
)

// AppointmentType represents the modality of an appointment
type AppointmentType string

const (
	AppointmentTypeVirtual    AppointmentType = "virtual"
	AppointmentTypePresential AppointmentType = "presential"
)

// ScheduleState represents the lifecycle state of an appointment
type ScheduleState string

const (
	ScheduleStateBooked    ScheduleState = "booked"
	ScheduleStateCancelled ScheduleState = "cancelled"
)

// Appointment represents a scheduled engagement between one requester and one fixer
type Appointment struct {
	ID                    string          `json:"id" db:"id"`
	RequesterID           string          `json:"id_requester" db:"id_requester"`
	FixerID               string          `json:"id_fixer" db:"id_fixer"`
	CurrentRequesterName  string          `json:"current_requester_name" db:"current_requester_name"`
	CurrentRequesterPhone string          `json:"current_requester_phone" db:"current_requester_phone"`
	Description           string          `json:"appointment_description" db:"appointment_description"`
	StartingTime          time.Time       `json:"starting_time" db:"starting_time"`
	FinishingTime         *time.Time      `json:"finishing_time,omitempty" db:"finishing_time"`
	AppointmentType       AppointmentType `json:"appointment_type" db:"appointment_type"`
	LinkID                string          `json:"link_id,omitempty" db:"link_id"`
	DisplayNameLocation   string          `json:"display_name_location,omitempty" db:"display_name_location"`
	Lat                   *string         `json:"lat,omitempty" db:"lat"`
	Lon                   *string         `json:"lon,omitempty" db:"lon"`
	ScheduleState         ScheduleState   `json:"schedule_state" db:"schedule_state"`
	CancelledFixer        bool            `json:"cancelled_fixer" db:"cancelled_fixer"`
	GoogleEventID         *string         `json:"googleEventId,omitempty" db:"google_event_id"`
	Mail                  []string        `json:"mail" db:"mail"`
	CreatedAt             time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at" db:"updated_at"`
}

// EffectiveEnd returns the finishing time, defaulting to one hour after the start
func (a *Appointment) EffectiveEnd() time.Time {
	if a.FinishingTime != nil {
		return *a.FinishingTime
	}
	return a.StartingTime.Add(time.Hour)
}

// IsVirtual reports whether the appointment is held remotely
func (a *Appointment) IsVirtual() bool {
	return a.AppointmentType == AppointmentTypeVirtual
}

// HasCalendarEvent reports whether a live calendar event is linked
func (a *Appointment) HasCalendarEvent() bool {
	return a.GoogleEventID != nil && *a.GoogleEventID != ""
}

// AppointmentPatch is a typed merge-patch over an appointment's mutable
// attributes. A nil field leaves the stored value untouched; a non-nil field
// fully replaces it. The HTTP boundary strips explicit nulls before the
// patch reaches the core, so a present false/zero value is a real write.
type AppointmentPatch struct {
	CurrentRequesterName  *string          `json:"current_requester_name,omitempty"`
	CurrentRequesterPhone *string          `json:"current_requester_phone,omitempty"`
	Description           *string          `json:"appointment_description,omitempty"`
	StartingTime          *time.Time       `json:"starting_time,omitempty"`
	FinishingTime         *time.Time       `json:"finishing_time,omitempty"`
	AppointmentType       *AppointmentType `json:"appointment_type,omitempty"`
	LinkID                *string          `json:"link_id,omitempty"`
	DisplayNameLocation   *string          `json:"display_name_location,omitempty"`
	Lat                   *string          `json:"lat,omitempty"`
	Lon                   *string          `json:"lon,omitempty"`
	ScheduleState         *ScheduleState   `json:"schedule_state,omitempty"`
	CancelledFixer        *bool            `json:"cancelled_fixer,omitempty"`
	Mail                  *[]string        `json:"mail,omitempty"`
}

// IsZero reports whether the patch carries no fields at all
func (p *AppointmentPatch) IsZero() bool {
	return p == nil || *p == (AppointmentPatch{})
}

// SetsCancelled reports whether the patch moves the appointment to cancelled
func (p *AppointmentPatch) SetsCancelled() bool {
	return p != nil && p.ScheduleState != nil && *p.ScheduleState == ScheduleStateCancelled
}
