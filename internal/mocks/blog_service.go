package mocks

import (
	"context"
	"time"

	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/service"
	"github.com/taskhub/taskhub-api/internal/store"
)

// MockBlogService implements service.BlogService for testing
type MockBlogService struct {
	ListPostsFn  func(ctx context.Context, filter store.BlogPostFilter) ([]*domain.BlogPost, error)
	CreatePostFn func(ctx context.Context, title, content string, publishedDate *time.Time) (*domain.BlogPost, error)
	UpdatePostFn func(ctx context.Context, id int64, update domain.BlogPostUpdate) (*domain.BlogPost, error)
	DeletePostFn func(ctx context.Context, id int64) error
}

var _ service.BlogService = (*MockBlogService)(nil)

// ListPosts implements service.BlogService
func (m *MockBlogService) ListPosts(ctx context.Context, filter store.BlogPostFilter) ([]*domain.BlogPost, error) {
	if m.ListPostsFn != nil {
		return m.ListPostsFn(ctx, filter)
	}
	return []*domain.BlogPost{}, nil
}

// CreatePost implements service.BlogService
func (m *MockBlogService) CreatePost(
	ctx context.Context,
	title, content string,
	publishedDate *time.Time,
) (*domain.BlogPost, error) {
	if m.CreatePostFn != nil {
		return m.CreatePostFn(ctx, title, content, publishedDate)
	}
	return &domain.BlogPost{Title: title, Content: content, PublishedDate: publishedDate}, nil
}

// UpdatePost implements service.BlogService
func (m *MockBlogService) UpdatePost(
	ctx context.Context,
	id int64,
	update domain.BlogPostUpdate,
) (*domain.BlogPost, error) {
	if m.UpdatePostFn != nil {
		return m.UpdatePostFn(ctx, id, update)
	}
	return &domain.BlogPost{ID: id}, nil
}

// DeletePost implements service.BlogService
func (m *MockBlogService) DeletePost(ctx context.Context, id int64) error {
	if m.DeletePostFn != nil {
		return m.DeletePostFn(ctx, id)
	}
	return nil
}
