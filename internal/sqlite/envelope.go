package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/paperstack-io/paperstack/internal/domain/envelope"
	"github.com/paperstack-io/paperstack/internal/repository"
)

// EnvelopeRepository implements repository.EnvelopeRepository for SQLite
type EnvelopeRepository struct {
	db *DB
}

// NewEnvelopeRepository creates a new EnvelopeRepository
func NewEnvelopeRepository(db *DB) *EnvelopeRepository {
	return &EnvelopeRepository{db: db}
}

// Create inserts a new envelope
func (r *EnvelopeRepository) Create(ctx context.Context, orgID string, env *envelope.Envelope) error {
	now := time.Now().UTC()
	if env.CreatedAt.IsZero() {
		env.CreatedAt = now
	}
	if env.UpdatedAt.IsZero() {
		env.UpdatedAt = env.CreatedAt
	}

	query := `
		INSERT INTO envelopes (
			id, org_id, document_id, provider, provider_ref, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		env.ID,
		orgID,
		env.DocumentID,
		env.Provider,
		env.ProviderRef,
		env.Status,
		env.CreatedAt,
		env.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create envelope: %w", err)
	}

	env.OrgID = orgID

	return nil
}

// GetByProviderRef looks up an envelope by its provider reference
func (r *EnvelopeRepository) GetByProviderRef(ctx context.Context, provider, providerRef string) (*envelope.Envelope, error) {
	query := `
		SELECT id, org_id, document_id, provider, provider_ref, status, created_at, updated_at
		FROM envelopes
		WHERE provider = ? AND provider_ref = ?
	`

	var env envelope.Envelope
	err := r.db.QueryRowContext(ctx, query, provider, providerRef).Scan(
		&env.ID,
		&env.OrgID,
		&env.DocumentID,
		&env.Provider,
		&env.ProviderRef,
		&env.Status,
		&env.CreatedAt,
		&env.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope: %w", err)
	}
	return &env, nil
}

// UpdateStatus sets the envelope status and bumps updated_at
func (r *EnvelopeRepository) UpdateStatus(ctx context.Context, id string, status envelope.Status) error {
	query := `UPDATE envelopes SET status = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update envelope: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
