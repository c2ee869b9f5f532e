package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/servineo/backend/internal/adapters/cache"
	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/providers"
	"github.com/servineo/backend/internal/domain/repositories"
)

// CachedUserAdapter wraps a UserRepository with a Redis read-through cache.
// Contact records are resolved on every notification, so user reads are hot.
type CachedUserAdapter struct {
	adapter repositories.UserRepository
	cache   providers.CacheProvider
}

// NewCachedUserAdapter creates a new cached user adapter
func NewCachedUserAdapter(adapter repositories.UserRepository, cache providers.CacheProvider) repositories.UserRepository {
	return &CachedUserAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

const userByIDTTL = 300 // seconds

func userCacheKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

// GetByID retrieves a user by ID with caching
func (a *CachedUserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	cacheKey := userCacheKey(id)

	cached, err := a.cache.Get(ctx, cacheKey)
	switch {
	case err == nil:
		var user entities.User
		if err := json.Unmarshal(cached, &user); err == nil {
			return &user, nil
		}
		log.Warn().Str("user_id", id).Msg("failed to unmarshal cached user, falling through")
	case !errors.Is(err, cache.ErrMiss):
		log.Warn().Err(err).Str("user_id", id).Msg("user cache unavailable, falling through")
	}

	user, err := a.adapter.GetByID(ctx, id)
	if err != nil || user == nil {
		return user, err
	}

	// Cache write happens off the request path
	go func() {
		if data, err := json.Marshal(user); err == nil {
			if err := a.cache.Set(context.Background(), cacheKey, data, userByIDTTL); err != nil {
				log.Warn().Err(err).Str("user_id", id).Msg("failed to cache user")
			}
		}
	}()

	return user, nil
}

// SetAvailability writes through and invalidates the cached user
func (a *CachedUserAdapter) SetAvailability(ctx context.Context, fixerID string, availability *entities.Availability) error {
	if err := a.adapter.SetAvailability(ctx, fixerID, availability); err != nil {
		return err
	}

	if err := a.cache.Delete(ctx, userCacheKey(fixerID)); err != nil {
		log.Warn().Err(err).Str("user_id", fixerID).Msg("failed to invalidate cached user")
	}

	return nil
}
