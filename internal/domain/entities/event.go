package entities

import "time"

// AppointmentEventType classifies a broadcast appointment mutation
type AppointmentEventType string

const (
	AppointmentEventUpdated     AppointmentEventType = "updated"
	AppointmentEventRescheduled AppointmentEventType = "rescheduled"
	AppointmentEventCancelled   AppointmentEventType = "cancelled"
)

// AppointmentEvent is the payload broadcast on the event bus each time an
// appointment is mutated. Consumers (admin tracking, dashboards) subscribe
// to the appointment channel; publishing is always best-effort.
type AppointmentEvent struct {
	ID            string               `json:"id"`
	AppointmentID string               `json:"appointment_id"`
	Type          AppointmentEventType `json:"type"`
	FixerID       string               `json:"id_fixer"`
	RequesterID   string               `json:"id_requester"`
	StartingTime  time.Time            `json:"starting_time"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

// EventInvite is the calendar-event payload pushed to the calendar provider.
// It is rebuilt from the post-update appointment on every sync.
type EventInvite struct {
	Recipients          []string
	Title               string
	Description         string
	Start               time.Time
	End                 time.Time
	IsVirtual           bool
	CustomLink          string
	LocationName        string
	LocationCoordinates *Coordinates
}

// Coordinates is a latitude/longitude pair kept in the stored string form
type Coordinates struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}
