package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/servineo/backend/pkg/config"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// WhatsAppSender sends freeform messages via the WhatsApp Cloud API.
// It fails fast at construction when credentials are absent and never
// retries a send; retry policy belongs to the caller (who chooses to log).
type WhatsAppSender struct {
	accessToken   string
	phoneNumberID string
	httpClient    *http.Client
	baseURL       string
}

// NewWhatsAppSender creates a new WhatsApp sender
func NewWhatsAppSender(cfg *config.WhatsAppConfig) (*WhatsAppSender, error) {
	if cfg.AccessToken == "" || cfg.PhoneNumberID == "" {
		return nil, apperrors.NewValidationError("whatsapp access token and phone number id must be set")
	}

	return &WhatsAppSender{
		accessToken:   cfg.AccessToken,
		phoneNumberID: cfg.PhoneNumberID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://graph.facebook.com/v18.0",
	}, nil
}

type whatsAppTextMessage struct {
	MessagingProduct string `json:"messaging_product"`
	RecipientType    string `json:"recipient_type"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		PreviewURL bool   `json:"preview_url"`
		Body       string `json:"body"`
	} `json:"text"`
}

type whatsAppResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// Send delivers a text message to one number and returns the message id
func (w *WhatsAppSender) Send(toNumber, body string) (string, error) {
	message := whatsAppTextMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               toNumber,
		Type:             "text",
	}
	message.Text.Body = body

	jsonData, err := json.Marshal(message)
	if err != nil {
		return "", apperrors.NewSendError("failed to marshal whatsapp message", err)
	}

	url := fmt.Sprintf("%s/%s/messages", w.baseURL, w.phoneNumberID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", apperrors.NewSendError("failed to create whatsapp request", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewSendError("failed to reach whatsapp api", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewSendError("failed to read whatsapp response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewSendError(
			fmt.Sprintf("whatsapp api error (status %d): %s", resp.StatusCode, string(respBody)), nil)
	}

	var parsed whatsAppResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", apperrors.NewSendError("failed to unmarshal whatsapp response", err)
	}
	if len(parsed.Messages) == 0 {
		return "", apperrors.NewSendError("no message id in whatsapp response", nil)
	}

	return parsed.Messages[0].ID, nil
}
