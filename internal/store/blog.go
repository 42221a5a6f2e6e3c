package store

import (
	"context"
	"time"

	"github.com/taskhub/taskhub-api/internal/domain"
)

// BlogPostFilter narrows a blog post listing. Zero values mean "no filter".
type BlogPostFilter struct {
	// ID restricts the listing to a single post.
	ID *int64
	// PublishedOn restricts the listing to posts published on that UTC day.
	PublishedOn *time.Time
}

// BlogStore defines the interface for blog post persistence.
type BlogStore interface {
	// List returns posts matching filter, newest first. Never nil.
	List(ctx context.Context, filter BlogPostFilter) ([]*domain.BlogPost, error)

	// Create saves a new post and sets its ID from the database.
	Create(ctx context.Context, post *domain.BlogPost) error

	// Update applies a partial update and returns the stored post.
	// Returns ErrBlogPostNotFound if the post does not exist.
	Update(ctx context.Context, id int64, update domain.BlogPostUpdate) (*domain.BlogPost, error)

	// Delete removes a post.
	// Returns ErrBlogPostNotFound if the post does not exist.
	Delete(ctx context.Context, id int64) error
}
