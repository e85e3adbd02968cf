package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"likebar/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, pageID, name, text, ipHash string) (*model.Comment, error) {
	query := `
		INSERT INTO comments (page_id, name, comment, ip_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, page_id, name, comment, ip_hash, created_at
	`
	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, query, pageID, name, text, ipHash)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &comment, nil
}

func (r *commentRepository) CountByPage(ctx context.Context, pageID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM comments WHERE page_id = $1`, pageID)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}

func (r *commentRepository) ListByPage(ctx context.Context, pageID string, limit int) ([]model.CommentView, error) {
	if limit <= 0 || limit > model.MaxCommentsPage {
		limit = model.MaxCommentsPage
	}

	type commentRow struct {
		Name      string    `db:"name"`
		Comment   string    `db:"comment"`
		CreatedAt time.Time `db:"created_at"`
	}

	query := `
		SELECT name, comment, created_at
		FROM comments
		WHERE page_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	var rows []commentRow
	err := r.db.SelectContext(ctx, &rows, query, pageID, limit)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	views := make([]model.CommentView, len(rows))
	for i, row := range rows {
		views[i] = model.CommentView{
			Name:    row.Name,
			Comment: row.Comment,
			Time:    row.CreatedAt.Format(time.RFC3339),
		}
	}
	return views, nil
}
