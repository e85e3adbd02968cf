package model

import (
	"errors"
	"time"
)

// Comment is a visitor comment on a page. The identity hash is kept for rate
// analysis and never exposed through the API.
type Comment struct {
	ID        int64     `db:"id"`
	PageID    string    `db:"page_id"`
	Name      string    `db:"name"`
	Comment   string    `db:"comment"`
	IPHash    string    `db:"ip_hash"`
	CreatedAt time.Time `db:"created_at"`
}

// CommentView is the public shape of a comment.
type CommentView struct {
	Name    string `db:"name" json:"name"`
	Comment string `db:"comment" json:"comment"`
	Time    string `json:"time"`
}

// SubmitCommentRequest is the request body for a comment submission.
// Name is optional; a blank name gets a synthesized UserN.
type SubmitCommentRequest struct {
	PageKey string `json:"page_key"`
	Name    string `json:"name"`
	Comment string `json:"comment"`
}

// CommentResponse echoes the stored name back to the caller.
type CommentResponse struct {
	Status string `json:"status"`
	Name   string `json:"name"`
}

// Comment constraints
const (
	MaxCommentLength = 500
	MaxCommentsPage  = 100
)

var (
	ErrCommentRequired = errors.New("comment text is required")
	ErrCommentTooLong  = errors.New("comment text too long")
)
