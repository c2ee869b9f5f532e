package repositories

import (
	"context"

	"github.com/servineo/backend/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// GetByID retrieves a user by ID; nil when absent
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// SetAvailability wholesale-replaces the fixer's stored availability.
	// No merge with prior slots, no range validation.
	SetAvailability(ctx context.Context, fixerID string, availability *entities.Availability) error
}
