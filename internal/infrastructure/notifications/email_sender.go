package notifications

import (
	"fmt"

	"github.com/google/uuid"
	gomail "gopkg.in/gomail.v2"

	"github.com/servineo/backend/pkg/config"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// EmailSender sends HTML mail through one SMTP session configured at
// construction. Missing notification credentials are a fatal startup
// condition; a transport failure on Send is a SendError and is not retried.
type EmailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailSender creates a new email sender from the notification mailbox config
func NewEmailSender(cfg *config.SMTPConfig) (*EmailSender, error) {
	if cfg.User == "" || cfg.Password == "" {
		return nil, apperrors.NewValidationError("smtp notification user and password must be set")
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	dialer.SSL = cfg.Secure

	from := cfg.From
	if from == "" {
		from = cfg.User
	}

	return &EmailSender{
		dialer: dialer,
		from:   from,
	}, nil
}

// Send delivers one HTML message and returns a message handle
func (e *EmailSender) Send(to, subject, htmlBody string) (string, error) {
	messageID := fmt.Sprintf("<%s@servineo>", uuid.New().String())

	m := gomail.NewMessage()
	m.SetAddressHeader("From", e.from, "Servineo")
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetHeader("Message-ID", messageID)
	m.SetBody("text/html", htmlBody)

	if err := e.dialer.DialAndSend(m); err != nil {
		return "", apperrors.NewSendError(fmt.Sprintf("failed to send email to %s", to), err)
	}

	return messageID, nil
}
