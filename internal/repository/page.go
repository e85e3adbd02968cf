package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"likebar/internal/model"
)

type pageRepository struct {
	db *sqlx.DB
}

func NewPageRepository(db *sqlx.DB) PageRepository {
	return &pageRepository{db: db}
}

// GetOrCreate registers a page lazily. ON CONFLICT DO NOTHING lets a losing
// concurrent insert fall through to re-reading the winner's row instead of
// erroring, so init stays idempotent under races.
func (r *pageRepository) GetOrCreate(ctx context.Context, pageKey string, tenantID *string) (*model.Page, error) {
	query := `
		INSERT INTO pages (id, tenant_id, page_key)
		VALUES ($1, $2, $3)
		ON CONFLICT (page_key) DO NOTHING
		RETURNING id, tenant_id, page_key, likes_count, created_at
	`
	var page model.Page
	err := r.db.GetContext(ctx, &page, query, uuid.NewString(), tenantID, pageKey)
	if err == nil {
		return &page, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("insert page: %w", err)
	}

	// Conflict: someone else holds the key. Return their row unchanged.
	return r.Find(ctx, pageKey)
}

func (r *pageRepository) Find(ctx context.Context, pageKey string) (*model.Page, error) {
	query := `
		SELECT id, tenant_id, page_key, likes_count, created_at
		FROM pages
		WHERE page_key = $1
	`
	var page model.Page
	err := r.db.GetContext(ctx, &page, query, pageKey)
	if err == sql.ErrNoRows {
		return nil, model.ErrPageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}
	return &page, nil
}

// RecordLike is the one atomic unit of the like flow: the row insert and the
// counter bump commit or roll back together, so likes_count never drifts from
// the actual like rows.
func (r *pageRepository) RecordLike(ctx context.Context, pageID, ipHash string) (*model.LikeResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO likes (page_id, ip_hash) VALUES ($1, $2)`, pageID, ipHash)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			// Already liked: idempotent no-op, report the current count.
			var likes int
			if err := r.db.GetContext(ctx, &likes,
				`SELECT likes_count FROM pages WHERE id = $1`, pageID); err != nil {
				return nil, fmt.Errorf("get like count: %w", err)
			}
			return &model.LikeResult{Accepted: false, Likes: likes}, nil
		}
		return nil, fmt.Errorf("insert like: %w", err)
	}

	var likes int
	err = tx.GetContext(ctx, &likes, `
		UPDATE pages SET likes_count = likes_count + 1
		WHERE id = $1
		RETURNING likes_count
	`, pageID)
	if err == sql.ErrNoRows {
		return nil, model.ErrPageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("increment like count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &model.LikeResult{Accepted: true, Likes: likes}, nil
}

// Delete removes a page; likes and comments go with it via ON DELETE CASCADE.
func (r *pageRepository) Delete(ctx context.Context, pageID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, pageID)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPageNotFound
	}
	return nil
}
