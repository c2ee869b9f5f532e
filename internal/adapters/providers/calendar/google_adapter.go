package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/providers"
	"github.com/servineo/backend/pkg/config"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// GoogleAdapter implements CalendarProvider against the Google Calendar API
type GoogleAdapter struct {
	service    *gcalendar.Service
	calendarID string
}

var _ providers.CalendarProvider = (*GoogleAdapter)(nil)

// NewGoogleAdapter creates a Google Calendar adapter from an offline refresh token
func NewGoogleAdapter(ctx context.Context, cfg *config.CalendarConfig) (*GoogleAdapter, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, apperrors.NewValidationError("google calendar client id, secret and refresh token must be set")
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gcalendar.CalendarEventsScope},
	}
	tokenSource := oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	service, err := gcalendar.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, apperrors.NewExternalSyncError("failed to create google calendar service", err)
	}

	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	return &GoogleAdapter{
		service:    service,
		calendarID: calendarID,
	}, nil
}

// UpdateEvent pushes the rebuilt invite payload to an existing event
func (a *GoogleAdapter) UpdateEvent(ctx context.Context, eventID string, invite *entities.EventInvite) error {
	event := &gcalendar.Event{
		Summary:     invite.Title,
		Description: invite.Description,
		Start: &gcalendar.EventDateTime{
			DateTime: invite.Start.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcalendar.EventDateTime{
			DateTime: invite.End.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
	}

	for _, email := range invite.Recipients {
		event.Attendees = append(event.Attendees, &gcalendar.EventAttendee{Email: email})
	}

	if invite.IsVirtual {
		if invite.CustomLink != "" {
			event.Location = invite.CustomLink
		}
	} else {
		event.Location = invite.LocationName
		if invite.LocationCoordinates != nil {
			event.Location = fmt.Sprintf("%s (%s, %s)",
				invite.LocationName, invite.LocationCoordinates.Lat, invite.LocationCoordinates.Lon)
		}
	}

	_, err := a.service.Events.Update(a.calendarID, eventID, event).
		Context(ctx).
		SendUpdates("all").
		Do()
	if err != nil {
		return apperrors.NewExternalSyncError(fmt.Sprintf("failed to update calendar event %s", eventID), err)
	}

	return nil
}

// DeleteEvent removes the event from the calendar
func (a *GoogleAdapter) DeleteEvent(ctx context.Context, eventID string) error {
	err := a.service.Events.Delete(a.calendarID, eventID).
		Context(ctx).
		SendUpdates("all").
		Do()
	if err != nil {
		return apperrors.NewExternalSyncError(fmt.Sprintf("failed to delete calendar event %s", eventID), err)
	}

	return nil
}
