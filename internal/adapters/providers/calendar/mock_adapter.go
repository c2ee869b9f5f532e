package calendar

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/providers"
)

// MockAdapter records calendar calls in memory for local development
type MockAdapter struct {
	mu      sync.Mutex
	events  map[string]*entities.EventInvite
	deleted []string
}

// NewMockAdapter creates a mock calendar provider
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{
		events: make(map[string]*entities.EventInvite),
	}
}

var _ providers.CalendarProvider = (*MockAdapter)(nil)

// UpdateEvent stores the latest invite payload for the event
func (m *MockAdapter) UpdateEvent(ctx context.Context, eventID string, invite *entities.EventInvite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[eventID] = invite
	log.Debug().Str("event_id", eventID).Str("title", invite.Title).Msg("mock calendar event updated")
	return nil
}

// DeleteEvent marks the event as deleted
func (m *MockAdapter) DeleteEvent(ctx context.Context, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.events, eventID)
	m.deleted = append(m.deleted, eventID)
	log.Debug().Str("event_id", eventID).Msg("mock calendar event deleted")
	return nil
}

// Event returns the last stored invite for an event id
func (m *MockAdapter) Event(eventID string) *entities.EventInvite {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events[eventID]
}

// Deleted returns the ids of deleted events in order
func (m *MockAdapter) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}
