package service

import (
	"context"

	"likebar/internal/model"
	"likebar/internal/queue"
)

// Mock repositories in the fn-field style: each test overrides only the
// behavior it cares about and asserts on recorded calls.

type mockPageRepository struct {
	getOrCreateFn func(ctx context.Context, pageKey string, tenantID *string) (*model.Page, error)
	findFn        func(ctx context.Context, pageKey string) (*model.Page, error)
	recordLikeFn  func(ctx context.Context, pageID, ipHash string) (*model.LikeResult, error)
	deleteFn      func(ctx context.Context, pageID string) error

	getOrCreateCalls []string
	recordLikeCalls  []recordLikeCall
}

type recordLikeCall struct {
	PageID string
	IPHash string
}

func (m *mockPageRepository) GetOrCreate(ctx context.Context, pageKey string, tenantID *string) (*model.Page, error) {
	m.getOrCreateCalls = append(m.getOrCreateCalls, pageKey)
	if m.getOrCreateFn != nil {
		return m.getOrCreateFn(ctx, pageKey, tenantID)
	}
	return &model.Page{ID: "page-1", PageKey: pageKey}, nil
}

func (m *mockPageRepository) Find(ctx context.Context, pageKey string) (*model.Page, error) {
	if m.findFn != nil {
		return m.findFn(ctx, pageKey)
	}
	return nil, model.ErrPageNotFound
}

func (m *mockPageRepository) RecordLike(ctx context.Context, pageID, ipHash string) (*model.LikeResult, error) {
	m.recordLikeCalls = append(m.recordLikeCalls, recordLikeCall{PageID: pageID, IPHash: ipHash})
	if m.recordLikeFn != nil {
		return m.recordLikeFn(ctx, pageID, ipHash)
	}
	return &model.LikeResult{Accepted: true, Likes: 1}, nil
}

func (m *mockPageRepository) Delete(ctx context.Context, pageID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, pageID)
	}
	return nil
}

type mockCommentRepository struct {
	createFn      func(ctx context.Context, pageID, name, text, ipHash string) (*model.Comment, error)
	countByPageFn func(ctx context.Context, pageID string) (int, error)
	listByPageFn  func(ctx context.Context, pageID string, limit int) ([]model.CommentView, error)

	createCalls []createCommentCall
}

type createCommentCall struct {
	PageID string
	Name   string
	Text   string
	IPHash string
}

func (m *mockCommentRepository) Create(ctx context.Context, pageID, name, text, ipHash string) (*model.Comment, error) {
	m.createCalls = append(m.createCalls, createCommentCall{PageID: pageID, Name: name, Text: text, IPHash: ipHash})
	if m.createFn != nil {
		return m.createFn(ctx, pageID, name, text, ipHash)
	}
	return &model.Comment{ID: 1, PageID: pageID, Name: name, Comment: text}, nil
}

func (m *mockCommentRepository) CountByPage(ctx context.Context, pageID string) (int, error) {
	if m.countByPageFn != nil {
		return m.countByPageFn(ctx, pageID)
	}
	return 0, nil
}

func (m *mockCommentRepository) ListByPage(ctx context.Context, pageID string, limit int) ([]model.CommentView, error) {
	if m.listByPageFn != nil {
		return m.listByPageFn(ctx, pageID, limit)
	}
	return nil, nil
}

type mockTenantRepository struct {
	getByAPIKeyFn func(ctx context.Context, apiKey string) (*model.Tenant, error)
}

func (m *mockTenantRepository) Create(ctx context.Context, name string, apiKey, allowedDomains *string) (*model.Tenant, error) {
	return &model.Tenant{ID: "tenant-1", Name: name, APIKey: apiKey}, nil
}

func (m *mockTenantRepository) GetByAPIKey(ctx context.Context, apiKey string) (*model.Tenant, error) {
	if m.getByAPIKeyFn != nil {
		return m.getByAPIKeyFn(ctx, apiKey)
	}
	return nil, model.ErrTenantNotFound
}

// mockPublisher records published events.
type mockPublisher struct {
	publishFn func(ctx context.Context, event queue.RealtimeEvent) (string, error)
	events    []queue.RealtimeEvent
}

func (m *mockPublisher) Publish(ctx context.Context, event queue.RealtimeEvent) (string, error) {
	m.events = append(m.events, event)
	if m.publishFn != nil {
		return m.publishFn(ctx, event)
	}
	return "msg-1", nil
}

// mockLimiter admits everything unless told otherwise.
type mockLimiter struct {
	admitFn func(op, identity string) bool
	calls   []string
}

func (m *mockLimiter) Admit(op, identity string) bool {
	m.calls = append(m.calls, op)
	if m.admitFn != nil {
		return m.admitFn(op, identity)
	}
	return true
}
