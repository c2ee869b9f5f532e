package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/servineo/backend/internal/application/services"
	"github.com/servineo/backend/internal/domain/entities"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// Mocks

type MockEmailChannel struct {
	mock.Mock
}

func (m *MockEmailChannel) Send(to, subject, htmlBody string) (string, error) {
	args := m.Called(to, subject, htmlBody)
	return args.String(0), args.Error(1)
}

type MockMessagingChannel struct {
	mock.Mock
}

func (m *MockMessagingChannel) Send(toNumber, body string) (string, error) {
	args := m.Called(toNumber, body)
	return args.String(0), args.Error(1)
}

type MockNotificationLogRepository struct {
	mock.Mock
}

func (m *MockNotificationLogRepository) Create(ctx context.Context, record *entities.NotificationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Helpers

func reachableFixer() *entities.User {
	return &entities.User{
		ID:       "fixer-1",
		Name:     "Carlos Mamani",
		Email:    "carlos@example.com",
		WhatsApp: "+59171234567",
		Role:     entities.UserRoleFixer,
	}
}

func reachableRequester() *entities.User {
	return &entities.User{
		ID:    "requester-1",
		Name:  "Juan Perez",
		Email: "juan@example.com",
		Phone: "+59176543210",
		Role:  entities.UserRoleRequester,
	}
}

// Tests

func TestNotificationService_SendAppointmentConfirmation(t *testing.T) {
	t.Run("sends to both parties on both channels", func(t *testing.T) {
		// Arrange
		email := new(MockEmailChannel)
		messaging := new(MockMessagingChannel)
		logs := new(MockNotificationLogRepository)
		service := services.NewNotificationService(email, messaging, logs, nil)

		appointment := bookedAppointment("appt-1")

		messaging.On("Send", "+59171234567", mock.Anything).Return("wamid.1", nil)
		messaging.On("Send", "+59176543210", mock.Anything).Return("wamid.2", nil)
		email.On("Send", "carlos@example.com", mock.Anything, mock.Anything).Return("<id1@servineo>", nil)
		email.On("Send", "juan@example.com", mock.Anything, mock.Anything).Return("<id2@servineo>", nil)
		logs.On("Create", mock.Anything, mock.Anything).Return(nil)

		// Act
		service.SendAppointmentConfirmation(context.Background(), reachableFixer(), reachableRequester(), appointment)

		// Assert
		email.AssertExpectations(t)
		messaging.AssertExpectations(t)
		logs.AssertNumberOfCalls(t, "Create", 4)
	})

	t.Run("skips channels whose recipient is missing", func(t *testing.T) {
		// Arrange
		email := new(MockEmailChannel)
		messaging := new(MockMessagingChannel)
		logs := new(MockNotificationLogRepository)
		service := services.NewNotificationService(email, messaging, logs, nil)

		fixer := reachableFixer()
		fixer.WhatsApp = ""
		fixer.Phone = ""
		requester := reachableRequester()
		requester.Email = ""

		email.On("Send", "carlos@example.com", mock.Anything, mock.Anything).Return("<id@servineo>", nil)
		messaging.On("Send", "+59176543210", mock.Anything).Return("wamid.1", nil)
		logs.On("Create", mock.Anything, mock.Anything).Return(nil)

		// Act
		service.SendAppointmentConfirmation(context.Background(), fixer, requester, bookedAppointment("appt-1"))

		// Assert
		email.AssertNumberOfCalls(t, "Send", 1)
		messaging.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("one channel failing never blocks the others", func(t *testing.T) {
		// Arrange
		email := new(MockEmailChannel)
		messaging := new(MockMessagingChannel)
		logs := new(MockNotificationLogRepository)
		service := services.NewNotificationService(email, messaging, logs, nil)

		messaging.On("Send", mock.Anything, mock.Anything).Return("", apperrors.NewSendError("whatsapp api rejected message", nil))
		email.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("<id@servineo>", nil)
		logs.On("Create", mock.Anything, mock.Anything).Return(nil)

		// Act: must not panic or surface the messaging failure
		service.SendAppointmentConfirmation(context.Background(), reachableFixer(), reachableRequester(), bookedAppointment("appt-1"))

		// Assert
		email.AssertNumberOfCalls(t, "Send", 2)
		messaging.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("records failed attempts with their error", func(t *testing.T) {
		// Arrange
		email := new(MockEmailChannel)
		messaging := new(MockMessagingChannel)
		logs := new(MockNotificationLogRepository)
		service := services.NewNotificationService(email, messaging, logs, nil)

		messaging.On("Send", mock.Anything, mock.Anything).Return("", apperrors.NewSendError("timeout", nil))
		email.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("<id@servineo>", nil)
		logs.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.NotificationRecord) bool {
			return r.Channel == entities.ChannelWhatsApp && r.Status == entities.NotificationStatusFailed && r.ErrorMessage != nil
		})).Return(nil)
		logs.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.NotificationRecord) bool {
			return r.Channel == entities.ChannelEmail && r.Status == entities.NotificationStatusSent && r.MessageID != nil
		})).Return(nil)

		// Act
		service.SendAppointmentConfirmation(context.Background(), reachableFixer(), reachableRequester(), bookedAppointment("appt-1"))

		// Assert
		logs.AssertExpectations(t)
	})
}

func TestRescheduleNotifier_NotifyReschedule(t *testing.T) {
	before := services.RescheduleSnapshot{
		FixerID:         "fixer-1",
		RequesterName:   "Juan Perez",
		Description:     "Reparación de tubería",
		StartingTime:    time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC),
		AppointmentType: entities.AppointmentTypePresential,
	}
	after := before
	after.StartingTime = time.Date(2025, 1, 12, 15, 0, 0, 0, time.UTC)

	t.Run("sends the notice with old and new dates to the fixer", func(t *testing.T) {
		// Arrange
		email := new(MockEmailChannel)
		messaging := new(MockMessagingChannel)
		logs := new(MockNotificationLogRepository)
		users := new(MockUserRepository)
		notifier := services.NewRescheduleNotifier(users, services.NewNotificationService(email, messaging, logs, nil))

		users.On("GetByID", mock.Anything, "fixer-1").Return(reachableFixer(), nil)
		messaging.On("Send", "+59171234567", mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "CITA REPROGRAMADA") &&
				strings.Contains(body, "Juan Perez") &&
				strings.Contains(body, "no hay tiempo")
		})).Return("wamid.1", nil)
		email.On("Send", "carlos@example.com", mock.Anything, mock.Anything).Return("<id@servineo>", nil)
		logs.On("Create", mock.Anything, mock.Anything).Return(nil)

		// Act
		notifier.NotifyReschedule(context.Background(), "appt-1", before, after, "no hay tiempo")

		// Assert
		messaging.AssertExpectations(t)
		email.AssertExpectations(t)
	})

	t.Run("skips silently when the fixer cannot be resolved", func(t *testing.T) {
		// Arrange
		email := new(MockEmailChannel)
		messaging := new(MockMessagingChannel)
		users := new(MockUserRepository)
		notifier := services.NewRescheduleNotifier(users, services.NewNotificationService(email, messaging, nil, nil))

		users.On("GetByID", mock.Anything, "fixer-1").Return(nil, nil)

		// Act
		notifier.NotifyReschedule(context.Background(), "appt-1", before, after, "motivo")

		// Assert
		messaging.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("skips silently when the fixer is unreachable", func(t *testing.T) {
		// Arrange
		email := new(MockEmailChannel)
		messaging := new(MockMessagingChannel)
		users := new(MockUserRepository)
		notifier := services.NewRescheduleNotifier(users, services.NewNotificationService(email, messaging, nil, nil))

		unreachable := reachableFixer()
		unreachable.Email = ""

		users.On("GetByID", mock.Anything, "fixer-1").Return(unreachable, nil)

		// Act
		notifier.NotifyReschedule(context.Background(), "appt-1", before, after, "motivo")

		// Assert
		messaging.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCancellationNotifier_NotifyFixerCancellation(t *testing.T) {
	date := time.Date(2025, 3, 5, 14, 0, 0, 0, time.UTC)

	t.Run("returns true when both channels deliver", func(t *testing.T) {
		// Arrange
		email := new(MockEmailChannel)
		messaging := new(MockMessagingChannel)
		logs := new(MockNotificationLogRepository)
		users := new(MockUserRepository)
		notifier := services.NewCancellationNotifier(users, services.NewNotificationService(email, messaging, logs, nil))

		users.On("GetByID", mock.Anything, "requester-1").Return(reachableRequester(), nil)
		users.On("GetByID", mock.Anything, "fixer-1").Return(reachableFixer(), nil)
		messaging.On("Send", "+59176543210", mock.Anything).Return("wamid.1", nil)
		email.On("Send", "juan@example.com", mock.Anything, mock.Anything).Return("<id@servineo>", nil)
		logs.On("Create", mock.Anything, mock.Anything).Return(nil)

		// Act
		ok := notifier.NotifyFixerCancellation(context.Background(), "requester-1", "fixer-1", "appt-1", date)

		// Assert
		assert.True(t, ok)
	})

	t.Run("returns true when exactly one channel delivers", func(t *testing.T) {
		// Arrange
		email := new(MockEmailChannel)
		messaging := new(MockMessagingChannel)
		logs := new(MockNotificationLogRepository)
		users := new(MockUserRepository)
		notifier := services.NewCancellationNotifier(users, services.NewNotificationService(email, messaging, logs, nil))

		users.On("GetByID", mock.Anything, "requester-1").Return(reachableRequester(), nil)
		users.On("GetByID", mock.Anything, "fixer-1").Return(reachableFixer(), nil)
		messaging.On("Send", "+59176543210", mock.Anything).Return("", apperrors.NewSendError("whatsapp down", nil))
		email.On("Send", "juan@example.com", mock.Anything, mock.Anything).Return("<id@servineo>", nil)
		logs.On("Create", mock.Anything, mock.Anything).Return(nil)

		// Act
		ok := notifier.NotifyFixerCancellation(context.Background(), "requester-1", "fixer-1", "appt-1", date)

		// Assert
		assert.True(t, ok)
	})

	t.Run("returns false when both channels fail", func(t *testing.T) {
		// Arrange
		email := new(MockEmailChannel)
		messaging := new(MockMessagingChannel)
		logs := new(MockNotificationLogRepository)
		users := new(MockUserRepository)
		notifier := services.NewCancellationNotifier(users, services.NewNotificationService(email, messaging, logs, nil))

		users.On("GetByID", mock.Anything, "requester-1").Return(reachableRequester(), nil)
		users.On("GetByID", mock.Anything, "fixer-1").Return(reachableFixer(), nil)
		messaging.On("Send", mock.Anything, mock.Anything).Return("", apperrors.NewSendError("whatsapp down", nil))
		email.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("", apperrors.NewSendError("smtp down", nil))
		logs.On("Create", mock.Anything, mock.Anything).Return(nil)

		// Act
		ok := notifier.NotifyFixerCancellation(context.Background(), "requester-1", "fixer-1", "appt-1", date)

		// Assert
		assert.False(t, ok)
	})

	t.Run("returns false without sending when the requester has no messaging number", func(t *testing.T) {
		// Arrange
		email := new(MockEmailChannel)
		messaging := new(MockMessagingChannel)
		users := new(MockUserRepository)
		notifier := services.NewCancellationNotifier(users, services.NewNotificationService(email, messaging, nil, nil))

		emailOnly := reachableRequester()
		emailOnly.Phone = ""
		emailOnly.WhatsApp = ""

		users.On("GetByID", mock.Anything, "requester-1").Return(emailOnly, nil)

		// Act
		ok := notifier.NotifyFixerCancellation(context.Background(), "requester-1", "fixer-1", "appt-1", date)

		// Assert
		assert.False(t, ok)
		messaging.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("returns false without sending when the fixer has no email", func(t *testing.T) {
		// Arrange
		email := new(MockEmailChannel)
		messaging := new(MockMessagingChannel)
		users := new(MockUserRepository)
		notifier := services.NewCancellationNotifier(users, services.NewNotificationService(email, messaging, nil, nil))

		noEmail := reachableFixer()
		noEmail.Email = ""

		users.On("GetByID", mock.Anything, "requester-1").Return(reachableRequester(), nil)
		users.On("GetByID", mock.Anything, "fixer-1").Return(noEmail, nil)

		// Act
		ok := notifier.NotifyFixerCancellation(context.Background(), "requester-1", "fixer-1", "appt-1", date)

		// Assert
		assert.False(t, ok)
		messaging.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("returns false without sending when the requester is missing", func(t *testing.T) {
		// Arrange
		email := new(MockEmailChannel)
		messaging := new(MockMessagingChannel)
		users := new(MockUserRepository)
		notifier := services.NewCancellationNotifier(users, services.NewNotificationService(email, messaging, nil, nil))

		users.On("GetByID", mock.Anything, "requester-1").Return(nil, nil)

		// Act
		ok := notifier.NotifyFixerCancellation(context.Background(), "requester-1", "fixer-1", "appt-1", date)

		// Assert
		assert.False(t, ok)
		messaging.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})
}
