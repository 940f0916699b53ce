package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. The activity log and pack run
// tables are append-only: nothing in the application updates or deletes
// their rows.
func (db *DB) RunMigrations() error {
	migration := `
-- Documents table
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    org_id TEXT NOT NULL,
    kind TEXT NOT NULL CHECK(kind IN ('deck', 'contract', 'memo')),
    title TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_org_documents ON documents(org_id, kind, updated_at);

-- Activity log (append-only)
CREATE TABLE IF NOT EXISTS activity_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    org_id TEXT NOT NULL,
    user_id TEXT,
    event_type TEXT NOT NULL,
    document_id TEXT,
    version_id TEXT,
    unified_item_id TEXT,
    envelope_id TEXT,
    share_link_id TEXT,
    provider TEXT,
    context TEXT,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_org_events_created ON activity_events(org_id, created_at);
CREATE INDEX IF NOT EXISTS idx_org_events_type ON activity_events(org_id, event_type);

-- Pack runs (append-only, one row per computation attempt)
CREATE TABLE IF NOT EXISTS pack_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    org_id TEXT NOT NULL,
    pack_type TEXT NOT NULL,
    period_start TIMESTAMP NOT NULL,
    period_end TIMESTAMP NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('success', 'failure')),
    metrics TEXT,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_org_pack_runs ON pack_runs(org_id, pack_type, status, created_at);

-- Signature envelopes
CREATE TABLE IF NOT EXISTS envelopes (
    id TEXT PRIMARY KEY,
    org_id TEXT NOT NULL,
    document_id TEXT NOT NULL,
    provider TEXT NOT NULL,
    provider_ref TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('draft', 'sent', 'completed', 'declined', 'voided')),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (document_id) REFERENCES documents(id)
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_envelope_provider_ref ON envelopes(provider, provider_ref);
CREATE INDEX IF NOT EXISTS idx_org_envelopes ON envelopes(org_id);

-- Share links
CREATE TABLE IF NOT EXISTS share_links (
    id TEXT PRIMARY KEY,
    org_id TEXT NOT NULL,
    document_id TEXT NOT NULL,
    token TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (document_id) REFERENCES documents(id)
);
CREATE INDEX IF NOT EXISTS idx_org_share_links ON share_links(org_id);

-- API keys for authentication
CREATE TABLE IF NOT EXISTS api_keys (
    key_hash TEXT PRIMARY KEY,
    org_id TEXT NOT NULL,
    user_id TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    last_used TIMESTAMP,
    description TEXT
);
CREATE INDEX IF NOT EXISTS idx_org_keys ON api_keys(org_id);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
