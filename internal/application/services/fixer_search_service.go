package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/providers"
	"github.com/servineo/backend/internal/domain/repositories"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// FixerSearchService keeps the fixer search index in step with storage and
// serves free-text lookups over fixer names and services
type FixerSearchService struct {
	users  repositories.UserRepository
	search providers.FixerSearchProvider
}

// NewFixerSearchService creates a new fixer search service
func NewFixerSearchService(users repositories.UserRepository, search providers.FixerSearchProvider) *FixerSearchService {
	return &FixerSearchService{
		users:  users,
		search: search,
	}
}

// IndexFixer loads the fixer from storage and upserts its search document
func (s *FixerSearchService) IndexFixer(ctx context.Context, fixerID string) error {
	user, err := s.users.GetByID(ctx, fixerID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFoundError("fixer not found")
	}
	if user.Role != entities.UserRoleFixer {
		return apperrors.NewValidationError("user is not a fixer")
	}

	doc := &entities.FixerDocument{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.ContactNumber(),
	}
	if user.Fixer != nil {
		doc.Services = user.Fixer.Services
	}

	if err := s.search.IndexFixer(ctx, doc); err != nil {
		return err
	}

	log.Debug().Str("fixer_id", fixerID).Msg("fixer indexed")
	return nil
}

// SearchFixers runs a free-text query; an empty query is rejected
func (s *FixerSearchService) SearchFixers(ctx context.Context, query string, limit int) ([]*entities.FixerSearchResult, error) {
	if query == "" {
		return nil, apperrors.NewValidationError("search query is required")
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.search.SearchFixers(ctx, query, limit)
}

// RemoveFixer drops the fixer's document from the index
func (s *FixerSearchService) RemoveFixer(ctx context.Context, fixerID string) error {
	return s.search.DeleteFixer(ctx, fixerID)
}
