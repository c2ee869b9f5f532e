package calendar

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/servineo/backend/internal/domain/providers"
	"github.com/servineo/backend/pkg/config"
)

// NewCalendarProvider creates the configured calendar provider, falling back
// to the mock when Google credentials are absent or invalid
func NewCalendarProvider(ctx context.Context, cfg *config.CalendarConfig) providers.CalendarProvider {
	if cfg.Provider != "google" {
		return NewMockAdapter()
	}

	adapter, err := NewGoogleAdapter(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("google calendar unavailable, using mock calendar provider")
		return NewMockAdapter()
	}

	return adapter
}
