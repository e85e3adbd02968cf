package service

import (
	"context"
	"testing"

	"likebar/internal/model"
)

func TestPageService_Init_Idempotent(t *testing.T) {
	pages := map[string]*model.Page{}
	pageRepo := &mockPageRepository{
		getOrCreateFn: func(ctx context.Context, pageKey string, tenantID *string) (*model.Page, error) {
			if p, ok := pages[pageKey]; ok {
				return p, nil
			}
			p := &model.Page{ID: "page-" + pageKey, PageKey: pageKey}
			pages[pageKey] = p
			return p, nil
		},
	}
	svc := NewPageService(pageRepo, &mockCommentRepository{}, &mockTenantRepository{})

	first, err := svc.Init(context.Background(), "blog-post-1", "")
	if err != nil {
		t.Fatalf("first init: %v", err)
	}
	second, err := svc.Init(context.Background(), "blog-post-1", "")
	if err != nil {
		t.Fatalf("second init: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("init returned different ids: %q vs %q", first.ID, second.ID)
	}
}

func TestPageService_Init_MissingKey(t *testing.T) {
	pageRepo := &mockPageRepository{}
	svc := NewPageService(pageRepo, &mockCommentRepository{}, &mockTenantRepository{})

	_, err := svc.Init(context.Background(), "", "")

	if err != model.ErrPageKeyRequired {
		t.Errorf("err = %v, want ErrPageKeyRequired", err)
	}
	if len(pageRepo.getOrCreateCalls) != 0 {
		t.Error("missing key must not reach the repository")
	}
}

func TestPageService_Init_AttachesKnownTenant(t *testing.T) {
	var gotTenantID *string
	pageRepo := &mockPageRepository{
		getOrCreateFn: func(ctx context.Context, pageKey string, tenantID *string) (*model.Page, error) {
			gotTenantID = tenantID
			return &model.Page{ID: "page-1", PageKey: pageKey, TenantID: tenantID}, nil
		},
	}
	tenantRepo := &mockTenantRepository{
		getByAPIKeyFn: func(ctx context.Context, apiKey string) (*model.Tenant, error) {
			if apiKey == "known-key" {
				return &model.Tenant{ID: "tenant-1", Name: "Reflect"}, nil
			}
			return nil, model.ErrTenantNotFound
		},
	}
	svc := NewPageService(pageRepo, &mockCommentRepository{}, tenantRepo)

	if _, err := svc.Init(context.Background(), "blog-post-1", "known-key"); err != nil {
		t.Fatalf("init with known key: %v", err)
	}
	if gotTenantID == nil || *gotTenantID != "tenant-1" {
		t.Errorf("tenant id = %v, want tenant-1", gotTenantID)
	}

	// Unknown keys are ignored, not errors.
	gotTenantID = nil
	if _, err := svc.Init(context.Background(), "blog-post-2", "bogus"); err != nil {
		t.Fatalf("init with unknown key: %v", err)
	}
	if gotTenantID != nil {
		t.Errorf("unknown api key should leave tenant unset, got %v", *gotTenantID)
	}
}

func TestPageService_Get_UnknownPageReturnsZeroValues(t *testing.T) {
	svc := NewPageService(&mockPageRepository{}, &mockCommentRepository{}, &mockTenantRepository{})

	resp, err := svc.Get(context.Background(), "never-initialized")

	if err != nil {
		t.Fatalf("unknown page must not error: %v", err)
	}
	if resp.Likes != 0 {
		t.Errorf("likes = %d, want 0", resp.Likes)
	}
	if resp.Comments == nil || len(resp.Comments) != 0 {
		t.Errorf("comments = %v, want empty non-nil slice", resp.Comments)
	}
}

func TestPageService_Get_ReturnsLikesAndComments(t *testing.T) {
	pageRepo := &mockPageRepository{
		findFn: func(ctx context.Context, pageKey string) (*model.Page, error) {
			return &model.Page{ID: "page-1", PageKey: pageKey, LikesCount: 3}, nil
		},
	}
	commentRepo := &mockCommentRepository{
		listByPageFn: func(ctx context.Context, pageID string, limit int) ([]model.CommentView, error) {
			if limit != model.MaxCommentsPage {
				t.Errorf("limit = %d, want %d", limit, model.MaxCommentsPage)
			}
			return []model.CommentView{
				{Name: "User2", Comment: "newest"},
				{Name: "User1", Comment: "oldest"},
			}, nil
		},
	}
	svc := NewPageService(pageRepo, commentRepo, &mockTenantRepository{})

	resp, err := svc.Get(context.Background(), "blog-post-1")

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if resp.Likes != 3 {
		t.Errorf("likes = %d, want 3", resp.Likes)
	}
	if len(resp.Comments) != 2 || resp.Comments[0].Comment != "newest" {
		t.Errorf("comments = %v, want newest first", resp.Comments)
	}
}
