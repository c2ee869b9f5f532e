package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/servineo/backend/internal/domain/entities"
)

func TestFormatLocalizedDateTime(t *testing.T) {
	tests := []struct {
		name     string
		instant  time.Time
		expected string
	}{
		{
			name:     "morning hour",
			instant:  time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC),
			expected: "Viernes, 10 de enero, 10:00 a. m.",
		},
		{
			name:     "afternoon hour uses 12-hour clock",
			instant:  time.Date(2025, 1, 12, 15, 30, 0, 0, time.UTC),
			expected: "Domingo, 12 de enero, 03:30 p. m.",
		},
		{
			name:     "midnight renders as twelve",
			instant:  time.Date(2025, 6, 2, 0, 5, 0, 0, time.UTC),
			expected: "Lunes, 2 de junio, 12:05 a. m.",
		},
		{
			name:     "noon renders as twelve pm",
			instant:  time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
			expected: "Lunes, 2 de junio, 12:00 p. m.",
		},
		{
			name:     "zero time falls back to placeholder",
			instant:  time.Time{},
			expected: "[No especificada]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatLocalizedDateTime(tt.instant))
		})
	}
}

func TestFormatAppointmentDate(t *testing.T) {
	got := formatAppointmentDate(time.Date(2025, 3, 5, 14, 0, 0, 0, time.UTC))
	assert.Equal(t, "Miércoles, 5 de marzo de 2025, 14:00", got)
}

func TestModalityText(t *testing.T) {
	assert.Equal(t, "Virtual", modalityText(entities.AppointmentTypeVirtual))
	assert.Equal(t, "Presencial", modalityText(entities.AppointmentTypePresential))
}
