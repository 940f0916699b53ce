package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/paperstack-io/paperstack/internal/domain/event"
)

// EventRepository implements repository.EventRepository for SQLite
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// Insert appends a new activity event
func (r *EventRepository) Insert(ctx context.Context, orgID string, ev *event.Event) error {
	createdAt := ev.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	createdAt = createdAt.Truncate(time.Microsecond)

	query := `
		INSERT INTO activity_events (
			org_id, user_id, event_type, document_id, version_id,
			unified_item_id, envelope_id, share_link_id, provider, context, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		orgID,
		ev.UserID,
		ev.Type,
		ev.Refs.DocumentID,
		ev.Refs.VersionID,
		ev.Refs.UnifiedItemID,
		ev.Refs.EnvelopeID,
		ev.Refs.ShareLinkID,
		ev.Provider,
		ev.Context,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		ev.ID = id
	}

	ev.OrgID = orgID
	ev.CreatedAt = createdAt

	return nil
}

// List returns events matching the given filters in reverse-chronological
// order. The cursor, when present, is an exclusive upper bound on
// (created_at, id).
func (r *EventRepository) List(ctx context.Context, orgID string, opts event.ListOptions) ([]event.Event, error) {
	query := `
		SELECT
			id, org_id, user_id, event_type, document_id, version_id,
			unified_item_id, envelope_id, share_link_id, provider, context, created_at
		FROM activity_events
		WHERE org_id = ?
	`

	args := []interface{}{orgID}
	conditions := []string{}

	if opts.From != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *opts.From)
	}
	if opts.To != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *opts.To)
	}
	if len(opts.Groups) > 0 {
		cond, condArgs := groupCondition(opts.Groups)
		conditions = append(conditions, cond)
		args = append(args, condArgs...)
	}
	if opts.Provider != nil {
		conditions = append(conditions, "provider = ?")
		args = append(args, *opts.Provider)
	}
	if opts.Search != "" {
		conditions = append(conditions, "instr(lower(event_type), lower(?)) > 0")
		args = append(args, opts.Search)
	}
	if opts.Cursor != nil {
		conditions = append(conditions, "(created_at < ? OR (created_at = ? AND id < ?))")
		args = append(args, opts.Cursor.CreatedAt, opts.Cursor.CreatedAt, opts.Cursor.ID)
	}

	for _, cond := range conditions {
		query += " AND " + cond
	}

	query += " ORDER BY created_at DESC, id DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}

// CountByTypePrefix counts events whose type starts with prefix and
// whose creation time is at or after since.
func (r *EventRepository) CountByTypePrefix(ctx context.Context, orgID, prefix string, since time.Time) (int64, error) {
	query := `
		SELECT COUNT(*) FROM activity_events
		WHERE org_id = ? AND event_type LIKE ? ESCAPE '\' AND created_at >= ?
	`

	var count int64
	err := r.db.QueryRowContext(ctx, query, orgID, likePrefix(prefix), since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// groupCondition builds one OR-combined predicate over the match rules
// of all requested groups. Rules are structured (prefix or exact), so no
// caller-supplied pattern ever reaches the LIKE clause unescaped.
func groupCondition(groups []event.Group) (string, []interface{}) {
	var clauses []string
	var args []interface{}
	for _, g := range groups {
		for _, rule := range event.RulesForGroup(g) {
			switch rule.Kind {
			case event.MatchExact:
				clauses = append(clauses, "event_type = ?")
				args = append(args, rule.Value)
			default:
				clauses = append(clauses, `event_type LIKE ? ESCAPE '\'`)
				args = append(args, likePrefix(rule.Value))
			}
		}
	}
	if len(clauses) == 0 {
		// Unknown groups match nothing.
		return "1 = 0", nil
	}
	return "(" + strings.Join(clauses, " OR ") + ")", args
}

// likePrefix escapes LIKE metacharacters in prefix and appends the
// wildcard. Event type prefixes contain underscores, which LIKE would
// otherwise treat as single-character wildcards.
func likePrefix(prefix string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(prefix) + "%"
}

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (event.Event, error) {
	var ev event.Event
	var userID, documentID, versionID, unifiedItemID sql.NullString
	var envelopeID, shareLinkID, provider, payload sql.NullString
	if err := row.Scan(
		&ev.ID,
		&ev.OrgID,
		&userID,
		&ev.Type,
		&documentID,
		&versionID,
		&unifiedItemID,
		&envelopeID,
		&shareLinkID,
		&provider,
		&payload,
		&ev.CreatedAt,
	); err != nil {
		return event.Event{}, err
	}
	if userID.Valid {
		ev.UserID = &userID.String
	}
	if documentID.Valid {
		ev.Refs.DocumentID = &documentID.String
	}
	if versionID.Valid {
		ev.Refs.VersionID = &versionID.String
	}
	if unifiedItemID.Valid {
		ev.Refs.UnifiedItemID = &unifiedItemID.String
	}
	if envelopeID.Valid {
		ev.Refs.EnvelopeID = &envelopeID.String
	}
	if shareLinkID.Valid {
		ev.Refs.ShareLinkID = &shareLinkID.String
	}
	if provider.Valid {
		ev.Provider = &provider.String
	}
	if payload.Valid {
		ev.Context = payload.String
	}
	return ev, nil
}
