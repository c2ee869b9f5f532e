package notifications

import (
	"testing"

	"github.com/servineo/backend/pkg/config"
	apperrors "github.com/servineo/backend/pkg/errors"
)

func TestNewWhatsAppSender(t *testing.T) {
	tests := []struct {
		name          string
		accessToken   string
		phoneNumberID string
		wantErr       bool
	}{
		{
			name:          "Valid credentials",
			accessToken:   "test_token",
			phoneNumberID: "123456789",
			wantErr:       false,
		},
		{
			name:          "Missing access token",
			accessToken:   "",
			phoneNumberID: "123456789",
			wantErr:       true,
		},
		{
			name:          "Missing phone number ID",
			accessToken:   "test_token",
			phoneNumberID: "",
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, err := NewWhatsAppSender(&config.WhatsAppConfig{
				AccessToken:   tt.accessToken,
				PhoneNumberID: tt.phoneNumberID,
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("NewWhatsAppSender() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && sender == nil {
				t.Error("NewWhatsAppSender() returned nil sender")
			}
		})
	}
}

func TestNewEmailSender(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		password string
		wantErr  bool
	}{
		{
			name:     "Valid credentials",
			user:     "notifications@servineo.app",
			password: "secret",
			wantErr:  false,
		},
		{
			name:     "Missing user",
			user:     "",
			password: "secret",
			wantErr:  true,
		},
		{
			name:     "Missing password",
			user:     "notifications@servineo.app",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, err := NewEmailSender(&config.SMTPConfig{
				Host:     "smtp.gmail.com",
				Port:     587,
				User:     tt.user,
				Password: tt.password,
				From:     "servineo2025@gmail.com",
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("NewEmailSender() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
				t.Errorf("NewEmailSender() error type = %v, want VALIDATION", err)
			}
			if !tt.wantErr && sender == nil {
				t.Error("NewEmailSender() returned nil sender")
			}
		})
	}
}
