package services

import (
	"fmt"
	"time"

	"github.com/servineo/backend/internal/domain/entities"
)

var spanishWeekdays = [...]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// formatLocalizedDateTime renders an instant the way confirmations show it:
// 12-hour clock, UTC-anchored, capitalized Spanish weekday and month.
func formatLocalizedDateTime(t time.Time) string {
	if t.IsZero() {
		return "[No especificada]"
	}
	t = t.UTC()

	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := "a. m."
	if t.Hour() >= 12 {
		meridiem = "p. m."
	}

	formatted := fmt.Sprintf("%s, %d de %s, %02d:%02d %s",
		spanishWeekdays[t.Weekday()], t.Day(), spanishMonths[t.Month()-1],
		hour, t.Minute(), meridiem)

	return capitalize(formatted)
}

// formatAppointmentDate renders an instant the way reschedule and
// cancellation notices show it: 24-hour clock with the year spelled out.
func formatAppointmentDate(t time.Time) string {
	t = t.UTC()
	formatted := fmt.Sprintf("%s, %d de %s de %d, %02d:%02d",
		spanishWeekdays[t.Weekday()], t.Day(), spanishMonths[t.Month()-1],
		t.Year(), t.Hour(), t.Minute())

	return capitalize(formatted)
}

// modalityText returns the user-facing label for an appointment type
func modalityText(appointmentType entities.AppointmentType) string {
	if appointmentType == entities.AppointmentTypeVirtual {
		return "Virtual"
	}
	return "Presencial"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	// Weekday names are plain ASCII, a byte upcase is enough
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
