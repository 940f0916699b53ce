package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/paperstack-io/paperstack/internal/domain/document"
	"github.com/paperstack-io/paperstack/internal/repository"
)

// DocumentRepository implements repository.DocumentRepository for SQLite
type DocumentRepository struct {
	db *DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a new document
func (r *DocumentRepository) Create(ctx context.Context, orgID string, doc *document.Document) error {
	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO documents (id, org_id, kind, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID,
		orgID,
		doc.Kind,
		doc.Title,
		createdAt,
		doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	doc.OrgID = orgID
	doc.CreatedAt = createdAt

	return nil
}

// RecentByKind returns the most recently updated documents of a kind.
// Documents that were never updated sort by creation time instead.
func (r *DocumentRepository) RecentByKind(ctx context.Context, orgID string, kind document.Kind, limit int) ([]document.Document, error) {
	query := `
		SELECT id, org_id, kind, title, created_at, updated_at
		FROM documents
		WHERE org_id = ? AND kind = ?
		ORDER BY COALESCE(updated_at, created_at) DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, orgID, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []document.Document
	for rows.Next() {
		var doc document.Document
		var updatedAt sql.NullTime
		if err := rows.Scan(
			&doc.ID,
			&doc.OrgID,
			&doc.Kind,
			&doc.Title,
			&doc.CreatedAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		if updatedAt.Valid {
			t := updatedAt.Time
			doc.UpdatedAt = &t
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}

	return docs, nil
}

// ShareLinkRepository implements repository.ShareLinkRepository for SQLite
type ShareLinkRepository struct {
	db *DB
}

// NewShareLinkRepository creates a new ShareLinkRepository
func NewShareLinkRepository(db *DB) *ShareLinkRepository {
	return &ShareLinkRepository{db: db}
}

// Create inserts a new share link
func (r *ShareLinkRepository) Create(ctx context.Context, orgID string, link *document.ShareLink) error {
	createdAt := link.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO share_links (id, org_id, document_id, token, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, link.ID, orgID, link.DocumentID, link.Token, createdAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create share link: %w", err)
	}

	link.OrgID = orgID
	link.CreatedAt = createdAt

	return nil
}

// GetByToken resolves a share token
func (r *ShareLinkRepository) GetByToken(ctx context.Context, token string) (*document.ShareLink, error) {
	query := `
		SELECT id, org_id, document_id, token, created_at
		FROM share_links
		WHERE token = ?
	`

	var link document.ShareLink
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&link.ID,
		&link.OrgID,
		&link.DocumentID,
		&link.Token,
		&link.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get share link: %w", err)
	}
	return &link, nil
}
