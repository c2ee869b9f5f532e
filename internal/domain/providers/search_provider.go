package providers

import (
	"context"

	"github.com/servineo/backend/internal/domain/entities"
)

// FixerSearchProvider defines the interface for the fixer search index
type FixerSearchProvider interface {
	// IndexFixer upserts a fixer document into the index
	IndexFixer(ctx context.Context, doc *entities.FixerDocument) error

	// SearchFixers runs a free-text query over fixer names and services
	SearchFixers(ctx context.Context, query string, limit int) ([]*entities.FixerSearchResult, error)

	// DeleteFixer removes a fixer document from the index
	DeleteFixer(ctx context.Context, id string) error
}
