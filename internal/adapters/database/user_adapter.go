package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	"github.com/servineo/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a user by ID; nil when no row matches
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	query, args, err := a.db.Select(
		"id", "name", "email", "telefono", "whatsapp", "role",
		"fixer_profile", "created_at", "updated_at",
	).From("users").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to build query", err)
	}

	user := &entities.User{}
	var telefono, whatsapp sql.NullString
	var fixerProfile []byte

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&telefono,
		&whatsapp,
		&user.Role,
		&fixerProfile,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError(fmt.Sprintf("failed to get user %s", id), err)
	}

	user.Phone = telefono.String
	user.WhatsApp = whatsapp.String

	if len(fixerProfile) > 0 {
		profile := &entities.FixerProfile{}
		if err := json.Unmarshal(fixerProfile, profile); err != nil {
			return nil, apperrors.NewPersistenceError(fmt.Sprintf("malformed fixer profile for user %s", id), err)
		}
		user.Fixer = profile
	}

	return user, nil
}

// SetAvailability wholesale-replaces the availability inside the fixer profile
func (a *UserAdapter) SetAvailability(ctx context.Context, fixerID string, availability *entities.Availability) error {
	data, err := json.Marshal(availability)
	if err != nil {
		return apperrors.NewPersistenceError("failed to encode availability", err)
	}

	query, args, err := a.db.Update("users").
		Set(goqu.Record{
			"fixer_profile": goqu.L("jsonb_set(COALESCE(fixer_profile, '{}'::jsonb), '{availability}', ?::jsonb)", string(data)),
			"updated_at":    time.Now().UTC(),
		}).
		Where(goqu.Ex{"id": fixerID}).
		ToSQL()
	if err != nil {
		return apperrors.NewPersistenceError("failed to build availability update", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to update availability for fixer %s", fixerID), err)
	}

	return nil
}
