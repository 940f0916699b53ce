package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/paperstack-io/paperstack/internal/domain/packrun"
	"github.com/paperstack-io/paperstack/internal/repository"
)

// PackRunRepository implements repository.PackRunRepository for SQLite
type PackRunRepository struct {
	db *DB
}

// NewPackRunRepository creates a new PackRunRepository
func NewPackRunRepository(db *DB) *PackRunRepository {
	return &PackRunRepository{db: db}
}

// Insert appends one pack run row
func (r *PackRunRepository) Insert(ctx context.Context, orgID string, run *packrun.Run) error {
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO pack_runs (
			org_id, pack_type, period_start, period_end, status, metrics, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		orgID,
		run.PackType,
		run.PeriodStart,
		run.PeriodEnd,
		run.Status,
		run.Metrics,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert pack run: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		run.ID = id
	}

	run.OrgID = orgID
	run.CreatedAt = createdAt

	return nil
}

// LatestSuccess returns the most recent successful run for the pack
// type, or repository.ErrNotFound when none exists.
func (r *PackRunRepository) LatestSuccess(ctx context.Context, orgID string, packType packrun.PackType) (*packrun.Run, error) {
	query := `
		SELECT id, org_id, pack_type, period_start, period_end, status, metrics, created_at
		FROM pack_runs
		WHERE org_id = ? AND pack_type = ? AND status = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var run packrun.Run
	var metrics sql.NullString
	err := r.db.QueryRowContext(ctx, query, orgID, packType, packrun.StatusSuccess).Scan(
		&run.ID,
		&run.OrgID,
		&run.PackType,
		&run.PeriodStart,
		&run.PeriodEnd,
		&run.Status,
		&metrics,
		&run.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest pack run: %w", err)
	}
	if metrics.Valid {
		run.Metrics = metrics.String
	}
	return &run, nil
}
