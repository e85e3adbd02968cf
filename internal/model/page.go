package model

import (
	"errors"
	"time"
)

// Page represents one embeddable widget instance identified by an external
// page key. LikesCount is a cached counter kept in sync with the likes table
// inside the same transaction that inserts a like.
type Page struct {
	ID         string    `db:"id" json:"page_id"`
	TenantID   *string   `db:"tenant_id" json:"-"`
	PageKey    string    `db:"page_key" json:"page_key"`
	LikesCount int       `db:"likes_count" json:"likes"`
	CreatedAt  time.Time `db:"created_at" json:"-"`
}

// Like is a single deduplicated like. The (page_id, ip_hash) pair is unique
// at the storage layer; that constraint, not application logic, closes the
// race between concurrent identical requests.
type Like struct {
	ID        int64     `db:"id"`
	PageID    string    `db:"page_id"`
	IPHash    string    `db:"ip_hash"`
	CreatedAt time.Time `db:"created_at"`
}

// LikeResult is the outcome of recording a like. Accepted is false when the
// visitor already liked the page; Likes carries the current count either way.
type LikeResult struct {
	Accepted bool
	Likes    int
}

// InitPageRequest is the request body for page registration.
type InitPageRequest struct {
	PageKey string `json:"page_key"`
}

// InitPageResponse mirrors the original widget contract.
type InitPageResponse struct {
	PageID string `json:"page_id"`
	Likes  int    `json:"likes"`
}

// PageResponse is the public page state: like count plus recent comments,
// newest first. Unknown pages get the zero value rather than an error.
type PageResponse struct {
	Likes    int           `json:"likes"`
	Comments []CommentView `json:"comments"`
}

// SubmitLikeRequest is the request body for a like submission.
type SubmitLikeRequest struct {
	PageKey string `json:"page_key"`
}

// LikeResponse carries the like count after a submission.
type LikeResponse struct {
	Likes int `json:"likes"`
}

var (
	ErrPageKeyRequired    = errors.New("page_key is required")
	ErrPageNotFound       = errors.New("page not found")
	ErrPageNotInitialized = errors.New("page not initialized")
	ErrRateLimited        = errors.New("rate limit exceeded")
)
