package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema creates every table the widget needs. Statements are idempotent so
// startup is safe against an already-provisioned database. The unique
// constraint on (page_id, ip_hash) is the source of truth for like
// deduplication; cascades keep likes and comments from outliving their page.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS tenants (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		api_key TEXT UNIQUE,
		allowed_domains TEXT,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS pages (
		id TEXT PRIMARY KEY,
		tenant_id TEXT REFERENCES tenants(id),
		page_key TEXT UNIQUE NOT NULL,
		likes_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS likes (
		id BIGSERIAL PRIMARY KEY,
		page_id TEXT NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
		ip_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uniq_like UNIQUE (page_id, ip_hash)
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id BIGSERIAL PRIMARY KEY,
		page_id TEXT NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
		name VARCHAR(100) NOT NULL DEFAULT '',
		comment TEXT NOT NULL,
		ip_hash TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_page_created
		ON comments (page_id, created_at DESC)`,
}

// EnsureSchema applies the bootstrap statements in order.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
