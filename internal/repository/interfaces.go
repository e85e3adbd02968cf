package repository

import (
	"context"

	"likebar/internal/model"
)

type PageRepository interface {
	// GetOrCreate returns the page for key, creating it with zero likes when
	// absent. Safe under concurrent calls with the same key.
	GetOrCreate(ctx context.Context, pageKey string, tenantID *string) (*model.Page, error)
	// Find returns the page for key, or model.ErrPageNotFound.
	Find(ctx context.Context, pageKey string) (*model.Page, error)
	// RecordLike inserts a like row and increments the cached counter in one
	// transaction. A duplicate (page, identity) pair reports Accepted=false
	// with the count unchanged.
	RecordLike(ctx context.Context, pageID, ipHash string) (*model.LikeResult, error)
	// Delete removes a page together with its likes and comments.
	Delete(ctx context.Context, pageID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, pageID, name, text, ipHash string) (*model.Comment, error)
	// CountByPage backs blank-name auto-numbering; best-effort under
	// concurrent inserts.
	CountByPage(ctx context.Context, pageID string) (int, error)
	// ListByPage returns up to limit comments, newest first.
	ListByPage(ctx context.Context, pageID string, limit int) ([]model.CommentView, error)
}

type TenantRepository interface {
	Create(ctx context.Context, name string, apiKey, allowedDomains *string) (*model.Tenant, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*model.Tenant, error)
}
