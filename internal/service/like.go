package service

import (
	"context"
	"fmt"
	"log"

	"likebar/internal/identity"
	"likebar/internal/model"
	"likebar/internal/queue"
	"likebar/internal/ratelimit"
	"likebar/internal/repository"
)

type LikeService struct {
	pageRepo  repository.PageRepository
	hasher    *identity.Hasher
	limiter   RateLimiter
	publisher queue.Publisher
}

func NewLikeService(
	pageRepo repository.PageRepository,
	hasher *identity.Hasher,
	limiter RateLimiter,
	publisher queue.Publisher,
) *LikeService {
	return &LikeService{
		pageRepo:  pageRepo,
		hasher:    hasher,
		limiter:   limiter,
		publisher: publisher,
	}
}

// Submit records one like for the visitor behind clientAddr. A repeat like
// from the same identity is absorbed silently and returns the current count.
// Likes never create pages; the page must have been initialized first.
func (s *LikeService) Submit(ctx context.Context, pageKey, clientAddr string) (int, error) {
	if pageKey == "" {
		return 0, model.ErrPageKeyRequired
	}

	if !s.limiter.Admit(ratelimit.OpLike, clientAddr) {
		return 0, model.ErrRateLimited
	}

	page, err := s.pageRepo.Find(ctx, pageKey)
	if err == model.ErrPageNotFound {
		return 0, model.ErrPageNotInitialized
	}
	if err != nil {
		return 0, fmt.Errorf("find page: %w", err)
	}

	ipHash := s.hasher.Hash(clientAddr)

	result, err := s.pageRepo.RecordLike(ctx, page.ID, ipHash)
	if err != nil {
		return 0, fmt.Errorf("record like: %w", err)
	}

	if result.Accepted {
		// Best-effort: subscribers missing an update is acceptable, a failed
		// like response is not.
		event := queue.NewLikeUpdateEvent(pageKey, result.Likes)
		if _, err := s.publisher.Publish(ctx, event); err != nil {
			log.Printf("[LikeService] publish like_update failed: room=%s err=%v", pageKey, err)
		}
	}

	return result.Likes, nil
}
