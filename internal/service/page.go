package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"likebar/internal/model"
	"likebar/internal/repository"
)

// RateLimiter is the admission check shared by the write paths. The identity
// is the raw client address; hashing happens only for what gets stored.
type RateLimiter interface {
	Admit(op, identity string) bool
}

type PageService struct {
	pageRepo    repository.PageRepository
	commentRepo repository.CommentRepository
	tenantRepo  repository.TenantRepository
}

func NewPageService(
	pageRepo repository.PageRepository,
	commentRepo repository.CommentRepository,
	tenantRepo repository.TenantRepository,
) *PageService {
	return &PageService{
		pageRepo:    pageRepo,
		commentRepo: commentRepo,
		tenantRepo:  tenantRepo,
	}
}

// Init registers a page lazily. Repeated init on an existing key returns the
// existing record unchanged. The API key is optional pass-through metadata:
// when it resolves to a tenant the page is tagged with it, otherwise it is
// silently ignored.
func (s *PageService) Init(ctx context.Context, pageKey, apiKey string) (*model.Page, error) {
	if pageKey == "" {
		return nil, model.ErrPageKeyRequired
	}

	var tenantID *string
	if apiKey != "" {
		tenant, err := s.tenantRepo.GetByAPIKey(ctx, apiKey)
		switch {
		case err == nil:
			tenantID = &tenant.ID
		case errors.Is(err, model.ErrTenantNotFound):
			// Unknown keys are not an error; tenancy is not enforced.
		default:
			log.Printf("[PageService] tenant lookup failed: %v", err)
		}
	}

	page, err := s.pageRepo.GetOrCreate(ctx, pageKey, tenantID)
	if err != nil {
		return nil, fmt.Errorf("get or create page: %w", err)
	}
	return page, nil
}

// Get returns the public page state. Unknown pages yield zero likes and an
// empty comment list, never an error.
func (s *PageService) Get(ctx context.Context, pageKey string) (*model.PageResponse, error) {
	page, err := s.pageRepo.Find(ctx, pageKey)
	if errors.Is(err, model.ErrPageNotFound) {
		return &model.PageResponse{Likes: 0, Comments: []model.CommentView{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page: %w", err)
	}

	comments, err := s.commentRepo.ListByPage(ctx, page.ID, model.MaxCommentsPage)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if comments == nil {
		comments = []model.CommentView{}
	}

	return &model.PageResponse{Likes: page.LikesCount, Comments: comments}, nil
}
