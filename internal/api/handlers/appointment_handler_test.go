package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/servineo/backend/internal/api/handlers"
	"github.com/servineo/backend/internal/domain/entities"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// MockAppointmentUpdater defines the mock service
type MockAppointmentUpdater struct {
	mock.Mock
}

func (m *MockAppointmentUpdater) UpdateAppointment(ctx context.Context, id string, patch *entities.AppointmentPatch, reason string) (bool, error) {
	args := m.Called(ctx, id, patch, reason)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentUpdater) CancelByFixer(ctx context.Context, id string) (*entities.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func patchRequest(id, body string) *http.Request {
	req := httptest.NewRequest("PATCH", "/api/crud_update/appointment/"+id, bytes.NewBufferString(body))
	req.SetPathValue("id", id)
	return req
}

func TestAppointmentHandler_UpdateAppointment(t *testing.T) {
	t.Run("decodes patch and reschedule reason", func(t *testing.T) {
		mockService := new(MockAppointmentUpdater)
		handler := handlers.NewAppointmentHandler(mockService)

		body := `{"starting_time":"2025-01-12T15:00:00Z","reprogramReason":"surgió un imprevisto"}`
		req := patchRequest("appt-1", body)
		w := httptest.NewRecorder()

		expected := time.Date(2025, 1, 12, 15, 0, 0, 0, time.UTC)
		mockService.On("UpdateAppointment", mock.Anything, "appt-1", mock.MatchedBy(func(p *entities.AppointmentPatch) bool {
			return p.StartingTime != nil && p.StartingTime.Equal(expected)
		}), "surgió un imprevisto").Return(true, nil)

		// Act
		handler.UpdateAppointment(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("strips explicit nulls but keeps explicit false", func(t *testing.T) {
		mockService := new(MockAppointmentUpdater)
		handler := handlers.NewAppointmentHandler(mockService)

		body := `{"finishing_time":null,"cancelled_fixer":false,"appointment_description":"nuevo texto"}`
		req := patchRequest("appt-1", body)
		w := httptest.NewRecorder()

		mockService.On("UpdateAppointment", mock.Anything, "appt-1", mock.MatchedBy(func(p *entities.AppointmentPatch) bool {
			return p.FinishingTime == nil &&
				p.CancelledFixer != nil && *p.CancelledFixer == false &&
				p.Description != nil && *p.Description == "nuevo texto"
		}), "").Return(true, nil)

		// Act
		handler.UpdateAppointment(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("returns bad request for invalid payload", func(t *testing.T) {
		mockService := new(MockAppointmentUpdater)
		handler := handlers.NewAppointmentHandler(mockService)

		req := patchRequest("appt-1", "invalid-json")
		w := httptest.NewRecorder()

		handler.UpdateAppointment(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "UpdateAppointment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("returns bad request when every field was null", func(t *testing.T) {
		mockService := new(MockAppointmentUpdater)
		handler := handlers.NewAppointmentHandler(mockService)

		req := patchRequest("appt-1", `{"starting_time":null}`)
		w := httptest.NewRecorder()

		handler.UpdateAppointment(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps not found to 404", func(t *testing.T) {
		mockService := new(MockAppointmentUpdater)
		handler := handlers.NewAppointmentHandler(mockService)

		req := patchRequest("missing", `{"appointment_description":"x"}`)
		w := httptest.NewRecorder()

		mockService.On("UpdateAppointment", mock.Anything, "missing", mock.Anything, "").
			Return(false, apperrors.NewNotFoundError("appointment not found"))

		handler.UpdateAppointment(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("maps calendar sync failure to 502", func(t *testing.T) {
		mockService := new(MockAppointmentUpdater)
		handler := handlers.NewAppointmentHandler(mockService)

		req := patchRequest("appt-1", `{"appointment_description":"x"}`)
		w := httptest.NewRecorder()

		mockService.On("UpdateAppointment", mock.Anything, "appt-1", mock.Anything, "").
			Return(false, apperrors.NewExternalSyncError("calendar update failed", nil))

		handler.UpdateAppointment(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestAppointmentHandler_CancelByFixer(t *testing.T) {
	t.Run("returns the cancelled appointment", func(t *testing.T) {
		mockService := new(MockAppointmentUpdater)
		handler := handlers.NewAppointmentHandler(mockService)

		cancelled := &entities.Appointment{ID: "appt-1", CancelledFixer: true}
		mockService.On("CancelByFixer", mock.Anything, "appt-1").Return(cancelled, nil)

		req := httptest.NewRequest("POST", "/api/crud_update/appointment/appt-1/cancel-by-fixer", nil)
		req.SetPathValue("id", "appt-1")
		w := httptest.NewRecorder()

		handler.CancelByFixer(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"cancelled_fixer":true`)
	})

	t.Run("maps not found to 404", func(t *testing.T) {
		mockService := new(MockAppointmentUpdater)
		handler := handlers.NewAppointmentHandler(mockService)

		mockService.On("CancelByFixer", mock.Anything, "missing").
			Return(nil, apperrors.NewNotFoundError("appointment not found"))

		req := httptest.NewRequest("POST", "/api/crud_update/appointment/missing/cancel-by-fixer", nil)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.CancelByFixer(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
