package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/store"
)

// BlogService provides the blog use cases.
type BlogService interface {
	ListPosts(ctx context.Context, filter store.BlogPostFilter) ([]*domain.BlogPost, error)
	CreatePost(ctx context.Context, title, content string, publishedDate *time.Time) (*domain.BlogPost, error)
	UpdatePost(ctx context.Context, id int64, update domain.BlogPostUpdate) (*domain.BlogPost, error)
	DeletePost(ctx context.Context, id int64) error
}

type blogServiceImpl struct {
	posts  store.BlogStore
	logger *slog.Logger
}

// NewBlogService creates a BlogService backed by posts.
func NewBlogService(posts store.BlogStore, logger *slog.Logger) (BlogService, error) {
	if posts == nil {
		return nil, &ServiceError{Service: "blog", Operation: "create_service", Message: "blog store cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &blogServiceImpl{
		posts:  posts,
		logger: logger.With(slog.String("component", "blog_service")),
	}, nil
}

// ListPosts returns the posts matching filter. A PublishedOn filter is
// normalised to the start of its UTC day.
func (s *blogServiceImpl) ListPosts(
	ctx context.Context,
	filter store.BlogPostFilter,
) ([]*domain.BlogPost, error) {
	if filter.PublishedOn != nil {
		day := filter.PublishedOn.UTC().Truncate(24 * time.Hour)
		filter.PublishedOn = &day
	}

	posts, err := s.posts.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list blog posts", slog.String("error", err.Error()))
		return nil, wrapError("blog", "list", "failed to list blog posts", err)
	}
	return posts, nil
}

func (s *blogServiceImpl) CreatePost(
	ctx context.Context,
	title, content string,
	publishedDate *time.Time,
) (*domain.BlogPost, error) {
	post, err := domain.NewBlogPost(title, content, publishedDate)
	if err != nil {
		return nil, err
	}

	if err := s.posts.Create(ctx, post); err != nil {
		s.logger.ErrorContext(ctx, "failed to create blog post", slog.String("error", err.Error()))
		return nil, wrapError("blog", "create", "failed to save blog post", err)
	}

	s.logger.InfoContext(ctx, "blog post created", slog.Int64("post_id", post.ID))
	return post, nil
}

func (s *blogServiceImpl) UpdatePost(
	ctx context.Context,
	id int64,
	update domain.BlogPostUpdate,
) (*domain.BlogPost, error) {
	if update.IsEmpty() {
		return nil, ErrNothingToUpdate
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	post, err := s.posts.Update(ctx, id, update)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.ErrorContext(ctx, "failed to update blog post",
				slog.Int64("post_id", id),
				slog.String("error", err.Error()))
		}
		return nil, wrapError("blog", "update", "failed to update blog post", err)
	}

	s.logger.InfoContext(ctx, "blog post updated", slog.Int64("post_id", id))
	return post, nil
}

func (s *blogServiceImpl) DeletePost(ctx context.Context, id int64) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.ErrorContext(ctx, "failed to delete blog post",
				slog.Int64("post_id", id),
				slog.String("error", err.Error()))
		}
		return wrapError("blog", "delete", "failed to delete blog post", err)
	}

	s.logger.InfoContext(ctx, "blog post deleted", slog.Int64("post_id", id))
	return nil
}
