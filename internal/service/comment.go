package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"likebar/internal/identity"
	"likebar/internal/model"
	"likebar/internal/queue"
	"likebar/internal/ratelimit"
	"likebar/internal/repository"
)

type CommentService struct {
	pageRepo    repository.PageRepository
	commentRepo repository.CommentRepository
	hasher      *identity.Hasher
	limiter     RateLimiter
	publisher   queue.Publisher
}

func NewCommentService(
	pageRepo repository.PageRepository,
	commentRepo repository.CommentRepository,
	hasher *identity.Hasher,
	limiter RateLimiter,
	publisher queue.Publisher,
) *CommentService {
	return &CommentService{
		pageRepo:    pageRepo,
		commentRepo: commentRepo,
		hasher:      hasher,
		limiter:     limiter,
		publisher:   publisher,
	}
}

// Submit validates, rate-checks and stores one comment, returning the name it
// was stored under. Blank names become UserN where N-1 is the page's comment
// count at insertion time; the numbering is best-effort under concurrency.
func (s *CommentService) Submit(ctx context.Context, pageKey, name, text, clientAddr string) (string, error) {
	if pageKey == "" {
		return "", model.ErrPageKeyRequired
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", model.ErrCommentRequired
	}
	// The bound is characters, not bytes; multibyte text gets the full budget.
	if utf8.RuneCountInString(text) > model.MaxCommentLength {
		return "", model.ErrCommentTooLong
	}

	if !s.limiter.Admit(ratelimit.OpComment, clientAddr) {
		return "", model.ErrRateLimited
	}

	page, err := s.pageRepo.Find(ctx, pageKey)
	if err == model.ErrPageNotFound {
		return "", model.ErrPageNotInitialized
	}
	if err != nil {
		return "", fmt.Errorf("find page: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		count, err := s.commentRepo.CountByPage(ctx, page.ID)
		if err != nil {
			return "", fmt.Errorf("count comments: %w", err)
		}
		name = fmt.Sprintf("User%d", count+1)
	}

	ipHash := s.hasher.Hash(clientAddr)

	if _, err := s.commentRepo.Create(ctx, page.ID, name, text, ipHash); err != nil {
		return "", fmt.Errorf("create comment: %w", err)
	}

	event := queue.NewCommentUpdateEvent(pageKey, name, text)
	if _, err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("[CommentService] publish comment_update failed: room=%s err=%v", pageKey, err)
	}

	return name, nil
}
