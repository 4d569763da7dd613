package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harborcrm/harbor/internal/domain"
)

type identityRepository struct {
	db *sql.DB
}

// NewIdentityRepository creates a new PostgreSQL identity repository
func NewIdentityRepository(db *sql.DB) domain.IdentityRepository {
	return &identityRepository{db: db}
}

func (r *identityRepository) GetIdentity(ctx context.Context, provider domain.Provider, externalID string) (*domain.CustomerIdentity, error) {
	query := `
		SELECT ` + domain.IdentityColumns + `
		FROM customer_identities
		WHERE provider = $1 AND external_id = $2
	`

	row := r.db.QueryRowContext(ctx, query, string(provider), externalID)
	identity, err := domain.ScanCustomerIdentity(row)

	if err == sql.ErrNoRows {
		return nil, &domain.ErrIdentityNotFound{Message: "identity not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	return identity, nil
}

// UpsertIdentity inserts the identity or, when (provider, external_id)
// already exists, refreshes email/phone/metadata in place. The owning
// customer_id is never changed here; only merge re-points identities.
// Concurrent first-sightings of the same external id converge on one row.
func (r *identityRepository) UpsertIdentity(ctx context.Context, identity *domain.CustomerIdentity) (bool, error) {
	if identity.ID == "" {
		identity.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	if identity.CreatedAt.IsZero() {
		identity.CreatedAt = now
	}
	identity.UpdatedAt = now

	query := `
		INSERT INTO customer_identities (
			id, customer_id, provider, external_id, email, phone, metadata,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (provider, external_id) WHERE external_id IS NOT NULL
		DO UPDATE SET
			email = COALESCE(EXCLUDED.email, customer_identities.email),
			phone = COALESCE(EXCLUDED.phone, customer_identities.phone),
			metadata = COALESCE(EXCLUDED.metadata, customer_identities.metadata),
			updated_at = EXCLUDED.updated_at
		RETURNING id, customer_id, (created_at = updated_at) AS inserted
	`

	var inserted bool
	err := r.db.QueryRowContext(ctx, query,
		identity.ID,
		identity.CustomerID,
		string(identity.Provider),
		identity.ExternalID,
		identity.Email,
		identity.Phone,
		identity.Metadata,
		identity.CreatedAt,
		identity.UpdatedAt,
	).Scan(&identity.ID, &identity.CustomerID, &inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert identity: %w", err)
	}

	return inserted, nil
}

func (r *identityRepository) CreateIdentity(ctx context.Context, identity *domain.CustomerIdentity) error {
	if identity.ID == "" {
		identity.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	identity.CreatedAt = now
	identity.UpdatedAt = now

	query := `
		INSERT INTO customer_identities (
			id, customer_id, provider, external_id, email, phone, metadata,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		identity.ID,
		identity.CustomerID,
		string(identity.Provider),
		identity.ExternalID,
		identity.Email,
		identity.Phone,
		identity.Metadata,
		identity.CreatedAt,
		identity.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ErrIdentityConflict{
				Provider:   identity.Provider,
				ExternalID: identity.ExternalID.StringValue(),
			}
		}
		return fmt.Errorf("failed to create identity: %w", err)
	}

	return nil
}

func (r *identityRepository) ListIdentities(ctx context.Context, customerID int64) ([]*domain.CustomerIdentity, error) {
	query := `
		SELECT ` + domain.IdentityColumns + `
		FROM customer_identities
		WHERE customer_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list identities: %w", err)
	}
	defer rows.Close()

	var identities []*domain.CustomerIdentity
	for rows.Next() {
		identity, err := domain.ScanCustomerIdentity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan identity: %w", err)
		}
		identities = append(identities, identity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating identity rows: %w", err)
	}

	return identities, nil
}
