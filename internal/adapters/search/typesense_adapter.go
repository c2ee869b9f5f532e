package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/providers"
	tsclient "github.com/servineo/backend/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements fixer search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ providers.FixerSearchProvider = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// IndexFixer upserts a fixer document into the index
func (a *TypesenseAdapter) IndexFixer(ctx context.Context, doc *entities.FixerDocument) error {
	document := map[string]interface{}{
		"id":       doc.ID,
		"name":     doc.Name,
		"services": doc.Services,
		"email":    doc.Email,
		"phone":    doc.Phone,
	}

	if _, err := a.client.Client().Collection(tsclient.FixersCollection).Documents().Upsert(ctx, document); err != nil {
		return fmt.Errorf("failed to index fixer: %w", err)
	}

	return nil
}

// DeleteFixer removes a fixer document from the index
func (a *TypesenseAdapter) DeleteFixer(ctx context.Context, id string) error {
	if _, err := a.client.Client().Collection(tsclient.FixersCollection).Document(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete fixer from index: %w", err)
	}
	return nil
}

// SearchFixers runs a free-text query over fixer names and services
func (a *TypesenseAdapter) SearchFixers(ctx context.Context, query string, limit int) ([]*entities.FixerSearchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name,services"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.FixersCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search fixers: %w", err)
	}

	results := []*entities.FixerSearchResult{}
	if result.Hits == nil {
		return results, nil
	}

	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document

		fixer := &entities.FixerDocument{}
		if val, ok := doc["id"].(string); ok {
			fixer.ID = val
		}
		if val, ok := doc["name"].(string); ok {
			fixer.Name = val
		}
		if raw, ok := doc["services"].([]interface{}); ok {
			for _, item := range raw {
				if s, ok := item.(string); ok {
					fixer.Services = append(fixer.Services, s)
				}
			}
		}
		if val, ok := doc["email"].(string); ok {
			fixer.Email = val
		}
		if val, ok := doc["phone"].(string); ok {
			fixer.Phone = val
		}

		score := 0.0
		if hit.TextMatch != nil {
			score = float64(*hit.TextMatch)
		}

		results = append(results, &entities.FixerSearchResult{Fixer: fixer, Score: score})
	}

	return results, nil
}
